package oracles

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/model/oracle/filter"
)

// IndexAssignment is the index triple the contract assigned to a registered oracle.
type IndexAssignment struct {
	Account common.Address
	Indexes oracle.Indexes
}

// StatusReporter exposes read-only snapshots of the pool for operators.
// None of its methods touch the network.
type StatusReporter struct {
	pool *Pool
}

func NewStatusReporter(pool *Pool) *StatusReporter {
	return &StatusReporter{pool: pool}
}

// Assignments returns the index triple of every registered identity, in pool order.
func (s *StatusReporter) Assignments() []IndexAssignment {
	registered := s.pool.Identities().Filter(filter.Registered)
	assignments := make([]IndexAssignment, 0, len(registered))
	for _, identity := range registered {
		assignments = append(assignments, IndexAssignment{
			Account: identity.Account,
			Indexes: identity.Indexes,
		})
	}
	return assignments
}

// Identities returns every identity of the pool, registered or not, in pool order.
func (s *StatusReporter) Identities() oracle.IdentityList {
	return s.pool.Identities()
}

// Identity returns the identity for the given account.
func (s *StatusReporter) Identity(account common.Address) (*oracle.Identity, bool) {
	return s.pool.ByAccount(account)
}
