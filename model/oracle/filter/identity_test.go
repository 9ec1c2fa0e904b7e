package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/model/oracle/filter"
)

func TestFilters(t *testing.T) {
	registered := &oracle.Identity{Indexes: oracle.Indexes{1, 5, 9}, Registered: true}
	unregistered := &oracle.Identity{}

	assert.True(t, filter.Any(unregistered))
	assert.True(t, filter.Registered(registered))
	assert.False(t, filter.Registered(unregistered))
	assert.True(t, filter.Not(filter.Registered)(unregistered))

	assert.True(t, filter.HasIndex(5)(registered))
	assert.False(t, filter.HasIndex(6)(registered))
	assert.True(t, filter.HasIndex(0)(unregistered))

	assert.True(t, filter.And(filter.Registered, filter.HasIndex(9))(registered))
	assert.False(t, filter.And(filter.Registered, filter.HasIndex(2))(registered))
	assert.False(t, filter.And(filter.Registered, filter.HasIndex(0))(unregistered))
	assert.True(t, filter.And()(unregistered))
}
