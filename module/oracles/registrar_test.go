package oracles

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module/metrics"
	mockmodule "github.com/gerreth/udacity-flight-surety/module/mock"
	"github.com/gerreth/udacity-flight-surety/utils/unittest"
)

var testFee = big.NewInt(1_000_000_000_000_000_000)

func indexesFor(i int) oracle.Indexes {
	return oracle.Indexes{uint8(i), uint8(i + 1), uint8(i + 2)}
}

func TestRegistrar_RegistersInOrder(t *testing.T) {
	accounts := unittest.AddressListFixture(5)
	contract := mockmodule.NewOracleContractClient(t)

	var calls []string
	for i, account := range accounts {
		account := account
		contract.On("RegisterOracle", mock.Anything, account, testFee).
			Run(func(mock.Arguments) { calls = append(calls, "register "+account.Hex()) }).
			Return(nil).Once()
		contract.On("GetMyIndexes", mock.Anything, account).
			Run(func(mock.Arguments) { calls = append(calls, "indexes "+account.Hex()) }).
			Return(indexesFor(i), nil).Once()
	}

	pool := NewPool()
	registrar := NewRegistrar(unittest.Logger(), metrics.NewNoopCollector(), pool, contract, testFee)

	registered, err := registrar.RegisterAll(context.Background(), accounts)
	require.NoError(t, err)
	assert.Equal(t, uint(5), registered)

	// fee payment strictly precedes the index query, one identity after the other
	var expected []string
	for _, account := range accounts {
		expected = append(expected, "register "+account.Hex(), "indexes "+account.Hex())
	}
	assert.Equal(t, expected, calls)

	assert.Equal(t, accounts, pool.Identities().Accounts())
	for i, identity := range pool.Identities() {
		assert.True(t, identity.Registered)
		assert.Equal(t, indexesFor(i), identity.Indexes)
	}
}

// A failing identity stays unregistered and does not affect the others.
func TestRegistrar_Failures(t *testing.T) {
	accounts := unittest.AddressListFixture(4)
	contract := mockmodule.NewOracleContractClient(t)

	feeErr := errors.New("insufficient funds")
	indexErr := errors.New("execution reverted")

	contract.On("RegisterOracle", mock.Anything, accounts[0], testFee).Return(nil).Once()
	contract.On("GetMyIndexes", mock.Anything, accounts[0]).Return(indexesFor(0), nil).Once()
	contract.On("RegisterOracle", mock.Anything, accounts[1], testFee).Return(feeErr).Once()
	contract.On("RegisterOracle", mock.Anything, accounts[2], testFee).Return(nil).Once()
	contract.On("GetMyIndexes", mock.Anything, accounts[2]).Return(oracle.Indexes{}, indexErr).Once()
	contract.On("RegisterOracle", mock.Anything, accounts[3], testFee).Return(nil).Once()
	contract.On("GetMyIndexes", mock.Anything, accounts[3]).Return(indexesFor(3), nil).Once()

	collector := mockmodule.NewOracleMetrics(t)
	collector.On("OracleRegistered", uint(1)).Once()
	collector.On("OracleRegistered", uint(2)).Once()
	collector.On("OracleRegistrationFailed").Twice()
	var pending []int
	collector.On("PendingRegistrations", mock.Anything).Run(func(args mock.Arguments) {
		pending = append(pending, args.Int(0))
	})

	pool := NewPool()
	registrar := NewRegistrar(unittest.Logger(), collector, pool, contract, testFee)

	registered, err := registrar.RegisterAll(context.Background(), accounts)
	assert.Equal(t, uint(2), registered)
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	for _, err := range merr.Errors {
		assert.True(t, IsRegistrationFailedError(err))
	}
	assert.ErrorIs(t, err, feeErr)
	assert.ErrorIs(t, err, indexErr)
	assert.Equal(t, []int{1, 2, 3, 4, 3, 2, 1, 0}, pending)

	identities := pool.Identities()
	require.Len(t, identities, 4)
	assert.Equal(t, accounts, identities.Accounts())
	assert.True(t, identities[0].Registered)
	assert.False(t, identities[1].Registered)
	assert.Equal(t, oracle.Indexes{}, identities[1].Indexes)
	assert.False(t, identities[2].Registered)
	assert.Equal(t, oracle.Indexes{}, identities[2].Indexes)
	assert.True(t, identities[3].Registered)
}

func TestRegistrar_DuplicateAccount(t *testing.T) {
	account := unittest.AddressFixture()
	contract := mockmodule.NewOracleContractClient(t)
	contract.On("RegisterOracle", mock.Anything, account, testFee).Return(nil).Once()
	contract.On("GetMyIndexes", mock.Anything, account).Return(indexesFor(1), nil).Once()

	pool := NewPool()
	registrar := NewRegistrar(unittest.Logger(), metrics.NewNoopCollector(), pool, contract, testFee)

	registered, err := registrar.RegisterAll(context.Background(), []common.Address{account, account})
	assert.Equal(t, uint(1), registered)
	require.Error(t, err)
	assert.True(t, IsDuplicateIdentityError(err))
	assert.Equal(t, uint(1), pool.Size())
}

// Cancelling the context stops registration between identities. Identities which were
// never attempted are still part of the pool.
func TestRegistrar_Cancelled(t *testing.T) {
	accounts := unittest.AddressListFixture(3)
	contract := mockmodule.NewOracleContractClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contract.On("RegisterOracle", mock.Anything, accounts[0], testFee).Return(nil).Once()
	contract.On("GetMyIndexes", mock.Anything, accounts[0]).
		Run(func(mock.Arguments) { cancel() }).
		Return(indexesFor(0), nil).Once()

	pool := NewPool()
	registrar := NewRegistrar(unittest.Logger(), metrics.NewNoopCollector(), pool, contract, testFee)

	registered, err := registrar.RegisterAll(ctx, accounts)
	assert.Equal(t, uint(1), registered)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, uint(3), pool.Size())
	assert.Equal(t, uint(1), pool.RegisteredCount())
	assert.Equal(t, accounts[1:], pool.Unregistered().Accounts())
}

func TestRegistrar_NoAccounts(t *testing.T) {
	contract := mockmodule.NewOracleContractClient(t)
	registrar := NewRegistrar(unittest.Logger(), metrics.NewNoopCollector(), NewPool(), contract, testFee)

	registered, err := registrar.RegisterAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, registered)
}
