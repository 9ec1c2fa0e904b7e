package oracles

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/gerreth/udacity-flight-surety/engine/common/fifoqueue"
	"github.com/gerreth/udacity-flight-surety/module"
	"github.com/gerreth/udacity-flight-surety/module/util"
)

// Registrar brings the identities of a pool to the registered state.
//
// Identities are registered strictly one after the other: every registration pays a fee
// from the identity's own balance and the contract client signs with per-account
// material, so the registrar drains a single FIFO queue with a single loop. A failed
// identity is skipped and never retried.
type Registrar struct {
	log      zerolog.Logger
	metrics  module.OracleMetrics
	pool     *Pool
	contract module.OracleContractClient
	fee      *big.Int
}

// NewRegistrar returns a registrar paying the given fee per identity.
func NewRegistrar(
	log zerolog.Logger,
	metrics module.OracleMetrics,
	pool *Pool,
	contract module.OracleContractClient,
	fee *big.Int,
) *Registrar {
	return &Registrar{
		log:      log.With().Str("module", "oracle_registrar").Logger(),
		metrics:  metrics,
		pool:     pool,
		contract: contract,
		fee:      new(big.Int).Set(fee),
	}
}

// RegisterAll adds all accounts to the pool and registers them in order. It returns the
// number of identities registered by this call.
//
// The returned error aggregates every per-identity failure (DuplicateIdentityError,
// RegistrationFailedError) and, if the context was cancelled, the reason the remaining
// identities were not attempted. It never means the fleet is unusable: callers are
// expected to log it and carry on with the registered identities.
func (r *Registrar) RegisterAll(ctx context.Context, accounts []common.Address) (uint, error) {
	var result *multierror.Error

	options := []fifoqueue.ConstructorOption[common.Address]{
		fifoqueue.WithLengthObserver[common.Address](r.metrics.PendingRegistrations),
	}
	if len(accounts) > 0 {
		options = append(options, fifoqueue.WithCapacity[common.Address](len(accounts)))
	}
	queue, err := fifoqueue.NewFifoQueue[common.Address](options...)
	if err != nil {
		return 0, fmt.Errorf("could not create registration queue: %w", err)
	}

	// every account enters the pool up front, so identities which are never
	// attempted still show up as unregistered
	for _, account := range accounts {
		err := r.pool.Add(account)
		if err != nil {
			r.log.Error().Err(err).Str("oracle", account.Hex()).Msg("skipping oracle identity")
			result = multierror.Append(result, err)
			continue
		}
		if !queue.Push(account) {
			// capacity covers every account, this is a bug
			r.log.Error().Str("oracle", account.Hex()).Msg("registration queue full, skipping oracle identity")
		}
	}

	progress := util.LogProgress(r.log, "oracle registration", queue.Len())

	registered := uint(0)
	for {
		account, ok := queue.Pop()
		if !ok {
			break
		}

		if ctx.Err() != nil {
			remaining := queue.Len() + 1
			r.log.Warn().Int("remaining", remaining).Msg("registration aborted")
			result = multierror.Append(result, fmt.Errorf("registration aborted with %d identities remaining: %w", remaining, ctx.Err()))
			break
		}

		err := r.register(ctx, account)
		if err != nil {
			r.log.Warn().Err(err).Str("oracle", account.Hex()).Msg("oracle stays unregistered")
			r.metrics.OracleRegistrationFailed()
			result = multierror.Append(result, err)
		} else {
			registered++
			r.metrics.OracleRegistered(r.pool.RegisteredCount())
		}
		progress(1)
	}

	r.log.Info().
		Uint("registered", registered).
		Int("requested", len(accounts)).
		Msg("oracle registration finished")

	unregistered := r.pool.Unregistered()
	if len(unregistered) > 0 {
		accounts := make([]string, 0, len(unregistered))
		for _, identity := range unregistered {
			accounts = append(accounts, identity.Account.Hex())
		}
		r.log.Warn().Strs("oracles", accounts).Msg("oracle identities left unregistered")
	}

	return registered, result.ErrorOrNil()
}

// register pays the fee for a single identity, then queries and stores its indexes.
// All errors are RegistrationFailedError.
func (r *Registrar) register(ctx context.Context, account common.Address) error {
	log := r.log.With().Str("oracle", account.Hex()).Logger()

	err := r.contract.RegisterOracle(ctx, account, r.fee)
	if err != nil {
		return NewRegistrationFailedErrorf(account, "could not pay registration fee: %w", err)
	}

	indexes, err := r.contract.GetMyIndexes(ctx, account)
	if err != nil {
		return NewRegistrationFailedErrorf(account, "could not get assigned indexes: %w", err)
	}

	err = r.pool.SetIndexes(account, indexes)
	if err != nil {
		// RegisterAll adds every account once and registers it once, this is a bug
		log.Error().Err(err).Msg("unexpected pool state")
		return NewRegistrationFailedErrorf(account, "could not store assigned indexes: %w", err)
	}

	log.Info().Str("indexes", indexes.String()).Msg("oracle registered")
	return nil
}
