package oracles

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/model/oracle/filter"
)

// Pool holds the oracle identities operated by the fleet, in the order they were added.
//
// The pool is written by the registrar while the fleet bootstraps and only read
// afterwards. The lock exists so the status surface can be served while
// registration is still in progress.
type Pool struct {
	mu         sync.RWMutex
	identities oracle.IdentityList
	byAccount  map[common.Address]*oracle.Identity
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{
		byAccount: make(map[common.Address]*oracle.Identity),
	}
}

// Add appends an unregistered identity for the given account.
// Expected errors during normal operations:
//   - DuplicateIdentityError if the account is already part of the pool
func (p *Pool) Add(account common.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byAccount[account]; ok {
		return DuplicateIdentityError{Account: account}
	}
	identity := &oracle.Identity{Account: account}
	p.identities = append(p.identities, identity)
	p.byAccount[account] = identity
	return nil
}

// SetIndexes stores the indexes assigned by the contract and marks the identity registered.
// Indexes are set at most once per identity.
// Expected errors during normal operations:
//   - UnknownIdentityError if the account is not part of the pool
//   - IndexesAlreadySetError if the identity is already registered; its indexes are kept
func (p *Pool) SetIndexes(account common.Address, indexes oracle.Indexes) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.byAccount[account]
	if !ok {
		return UnknownIdentityError{Account: account}
	}
	if identity.Registered {
		return IndexesAlreadySetError{Account: account, Indexes: identity.Indexes}
	}
	identity.Indexes = indexes
	identity.Registered = true
	return nil
}

// Matching returns, in insertion order, copies of all registered identities
// holding the given request index. Unregistered identities are never returned.
func (p *Pool) Matching(index uint8) oracle.IdentityList {
	return p.filter(filter.And(filter.Registered, filter.HasIndex(index)))
}

// Identities returns a snapshot of all identities in insertion order.
func (p *Pool) Identities() oracle.IdentityList {
	return p.filter(filter.Any)
}

// ByAccount returns a copy of the identity for the given account.
func (p *Pool) ByAccount(account common.Address) (*oracle.Identity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	identity, ok := p.byAccount[account]
	if !ok {
		return nil, false
	}
	identityCopy := *identity
	return &identityCopy, true
}

// Size returns the number of identities in the pool.
func (p *Pool) Size() uint {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return uint(len(p.identities))
}

// Unregistered returns, in insertion order, copies of all identities which are not
// registered.
func (p *Pool) Unregistered() oracle.IdentityList {
	return p.filter(filter.Not(filter.Registered))
}

// RegisteredCount returns the number of registered identities.
func (p *Pool) RegisteredCount() uint {
	return uint(len(p.filter(filter.Registered)))
}

func (p *Pool) filter(f oracle.IdentityFilter) oracle.IdentityList {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.identities.Filter(f).Copy()
}
