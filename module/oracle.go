package module

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
)

// OracleContractClient is a client to the flight surety app contract, restricted to the
// operations an oracle fleet needs. The client is treated as already connected.
//
// Every transaction is signed by the given account; implementations must serialize
// signing for the same account so concurrent calls do not race for a nonce.
type OracleContractClient interface {
	// RegisterOracle pays the registration fee from the given account. It returns once the
	// registration transaction has been included, or with an error if it failed.
	RegisterOracle(ctx context.Context, account common.Address, fee *big.Int) error

	// GetMyIndexes returns the index triple the contract assigned to the given account.
	GetMyIndexes(ctx context.Context, account common.Address) (oracle.Indexes, error)

	// SubmitOracleResponse sends the response from the response's oracle account. It
	// returns once the transaction has been accepted by the ledger node, without waiting
	// for it to be included.
	SubmitOracleResponse(ctx context.Context, response *oracle.StatusResponse) error

	// WatchOracleRequests subscribes to request events. Events are delivered in the order
	// the ledger node emits them; the same event may be delivered more than once. With a
	// start block, events emitted since that block are delivered before new ones.
	WatchOracleRequests(ctx context.Context, start *uint64, sink chan<- *oracle.StatusRequest) (event.Subscription, error)

	// WatchOracleReports subscribes to report events, like WatchOracleRequests.
	WatchOracleReports(ctx context.Context, start *uint64, sink chan<- *oracle.Report) (event.Subscription, error)
}

// StatusMeasurer determines the status an oracle reports for a request. It stands in
// for the real-world data source of an oracle.
type StatusMeasurer interface {
	Measure(request *oracle.StatusRequest) oracle.StatusCode
}
