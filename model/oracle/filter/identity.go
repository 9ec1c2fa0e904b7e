package filter

import (
	"github.com/gerreth/udacity-flight-surety/model/oracle"
)

// Any will always be true.
func Any(*oracle.Identity) bool {
	return true
}

// And combines two or more filters that all need to be true.
func And(filters ...oracle.IdentityFilter) oracle.IdentityFilter {
	return func(identity *oracle.Identity) bool {
		for _, filter := range filters {
			if !filter(identity) {
				return false
			}
		}
		return true
	}
}

// Not returns a filter equivalent to the inverse of the input filter.
func Not(filter oracle.IdentityFilter) oracle.IdentityFilter {
	return func(identity *oracle.Identity) bool {
		return !filter(identity)
	}
}

// Registered selects identities which completed registration with the contract.
func Registered(identity *oracle.Identity) bool {
	return identity.Registered
}

// HasIndex selects identities whose triple contains the given index. Unregistered
// identities carry the zero triple, so combine it with Registered to match requests.
func HasIndex(index uint8) oracle.IdentityFilter {
	return func(identity *oracle.Identity) bool {
		return identity.Indexes.Contains(index)
	}
}
