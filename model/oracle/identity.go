package oracle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// IndexCount is the number of indexes the contract assigns to every registered oracle.
const IndexCount = 3

// Indexes is the triple of request indexes assigned to an oracle by the contract at
// registration time. An oracle answers exactly those requests whose index is one of them.
type Indexes [IndexCount]uint8

// Contains returns true if the given request index is one of the assigned indexes.
func (ix Indexes) Contains(index uint8) bool {
	for _, assigned := range ix {
		if assigned == index {
			return true
		}
	}
	return false
}

// Slice returns the indexes as a slice, mostly for encoding.
func (ix Indexes) Slice() []uint8 {
	return []uint8{ix[0], ix[1], ix[2]}
}

func (ix Indexes) String() string {
	return fmt.Sprintf("(%d,%d,%d)", ix[0], ix[1], ix[2])
}

// Identity is an oracle identity operated by this fleet.
//
// Indexes are meaningful if and only if Registered is true; an identity that never
// completed registration carries the zero triple.
type Identity struct {
	// Account signs every transaction issued on behalf of this oracle. It is unique within a pool.
	Account    common.Address
	Indexes    Indexes
	Registered bool
}

func (iy Identity) String() string {
	if !iy.Registered {
		return fmt.Sprintf("%s(unregistered)", iy.Account.Hex())
	}
	return fmt.Sprintf("%s%s", iy.Account.Hex(), iy.Indexes)
}

// IdentityFilter is a predicate over identities.
type IdentityFilter func(*Identity) bool

// IdentityList is an ordered list of identities.
type IdentityList []*Identity

// Filter returns the identities for which the filter holds, preserving order.
func (il IdentityList) Filter(filter IdentityFilter) IdentityList {
	var dup IdentityList
	for _, identity := range il {
		if filter(identity) {
			dup = append(dup, identity)
		}
	}
	return dup
}

// Accounts returns the accounts of the identities in list order.
func (il IdentityList) Accounts() []common.Address {
	accounts := make([]common.Address, 0, len(il))
	for _, identity := range il {
		accounts = append(accounts, identity.Account)
	}
	return accounts
}

// Copy returns a deep copy of the list, so callers can hold on to it without
// observing later mutations.
func (il IdentityList) Copy() IdentityList {
	dup := make(IdentityList, 0, len(il))
	for _, identity := range il {
		identityCopy := *identity
		dup = append(dup, &identityCopy)
	}
	return dup
}
