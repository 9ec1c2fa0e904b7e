package unittest

import (
	"crypto/rand"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
)

// AddressFixture returns a random account address.
func AddressFixture() common.Address {
	var address common.Address
	_, _ = rand.Read(address[:])
	return address
}

// AddressListFixture returns n random account addresses.
func AddressListFixture(n int) []common.Address {
	addresses := make([]common.Address, 0, n)
	for i := 0; i < n; i++ {
		addresses = append(addresses, AddressFixture())
	}
	return addresses
}

// IdentityFixture returns a registered identity holding the given indexes.
func IdentityFixture(opts ...func(*oracle.Identity)) *oracle.Identity {
	identity := &oracle.Identity{
		Account:    AddressFixture(),
		Indexes:    oracle.Indexes{0, 1, 2},
		Registered: true,
	}
	for _, apply := range opts {
		apply(identity)
	}
	return identity
}

// WithIndexes sets the indexes of an identity fixture.
func WithIndexes(indexes oracle.Indexes) func(*oracle.Identity) {
	return func(identity *oracle.Identity) {
		identity.Indexes = indexes
	}
}

// WithAccount sets the account of an identity fixture.
func WithAccount(account common.Address) func(*oracle.Identity) {
	return func(identity *oracle.Identity) {
		identity.Account = account
	}
}

// Unregistered marks an identity fixture as not registered.
func Unregistered() func(*oracle.Identity) {
	return func(identity *oracle.Identity) {
		identity.Indexes = oracle.Indexes{}
		identity.Registered = false
	}
}

// StatusRequestFixture returns a request for the given index.
func StatusRequestFixture(index uint8) *oracle.StatusRequest {
	return &oracle.StatusRequest{
		Index:       index,
		Airline:     AddressFixture(),
		Flight:      "ND1309",
		Timestamp:   big.NewInt(1_600_000_000),
		BlockNumber: 1,
		TxHash:      common.BytesToHash(AddressFixture().Bytes()),
	}
}

// ReportFixture returns a report with the given status.
func ReportFixture(status oracle.StatusCode) *oracle.Report {
	return &oracle.Report{
		Airline:   AddressFixture(),
		Flight:    "ND1309",
		Timestamp: big.NewInt(1_600_000_000),
		Status:    status,
	}
}
