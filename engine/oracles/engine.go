package oracles

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module"
	"github.com/gerreth/udacity-flight-surety/module/component"
	"github.com/gerreth/udacity-flight-surety/module/contracts/flightsurety"
	"github.com/gerreth/udacity-flight-surety/module/irrecoverable"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
	"github.com/gerreth/udacity-flight-surety/module/util"
)

const (
	// capacity of the channels between a subscription and its consumer
	defaultEventBufferSize = 100
)

// Config is the configuration of the oracle fleet engine.
type Config struct {
	// Accounts are the oracle accounts, in registration order.
	Accounts []common.Address
	// RegistrationFee is paid by every account at registration.
	RegistrationFee *big.Int
	// SubmissionWorkers bounds the number of concurrent response submissions.
	SubmissionWorkers uint `validate:"gt=0"`
	// SubmissionTimeout bounds a single response submission.
	SubmissionTimeout time.Duration `validate:"gt=0"`
	// Subscriber configures how dropped event subscriptions are handled.
	Subscriber SubscriberConfig
}

func DefaultConfig() Config {
	return Config{
		RegistrationFee:   big.NewInt(1_000_000_000_000_000_000), // 1 ether
		SubmissionWorkers: 10,
		SubmissionTimeout: 30 * time.Second,
		Subscriber:        DefaultSubscriberConfig(),
	}
}

// Engine operates the oracle fleet: it registers every configured account with the
// contract and, once registration finished, answers the contract's status requests
// for all registered identities.
//
// The engine becomes ready when registration finished. Registration failures of single
// identities shrink the fleet, they never stop the engine.
type Engine struct {
	*component.ComponentManager

	log        zerolog.Logger
	metrics    module.OracleMetrics
	contract   module.OracleContractClient
	registrar  *oracles.Registrar
	dispatcher *Dispatcher
	config     Config

	registered chan struct{} // closed once registration finished
	requests   chan *oracle.StatusRequest
	reports    chan *oracle.Report

	// resubscriptions replay the events since the last consumed block
	requestCursor blockCursor
	reportCursor  blockCursor
}

// New creates the fleet engine. All identities of the pool are registered by the engine.
func New(
	log zerolog.Logger,
	metrics module.OracleMetrics,
	pool *oracles.Pool,
	contract module.OracleContractClient,
	measurer module.StatusMeasurer,
	config Config,
) (*Engine, error) {
	err := validator.New().Struct(config)
	if err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}
	if config.RegistrationFee == nil || config.RegistrationFee.Sign() < 0 {
		return nil, fmt.Errorf("invalid registration fee: %v", config.RegistrationFee)
	}

	log = log.With().Str("engine", "oracles").Logger()

	e := &Engine{
		log:        log,
		metrics:    metrics,
		contract:   contract,
		registrar:  oracles.NewRegistrar(log, metrics, pool, contract, config.RegistrationFee),
		dispatcher: NewDispatcher(log, metrics, pool, measurer, contract, config.SubmissionWorkers, config.SubmissionTimeout),
		config:     config,
		registered: make(chan struct{}),
		requests:   make(chan *oracle.StatusRequest, defaultEventBufferSize),
		reports:    make(chan *oracle.Report, defaultEventBufferSize),
	}

	e.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(e.registerOracles).
		AddWorker(e.superviseSubscription(flightsurety.EventOracleRequest, func(ctx context.Context) (event.Subscription, error) {
			return e.contract.WatchOracleRequests(ctx, e.requestCursor.Start(), e.requests)
		})).
		AddWorker(e.superviseSubscription(flightsurety.EventOracleReport, func(ctx context.Context) (event.Subscription, error) {
			return e.contract.WatchOracleReports(ctx, e.reportCursor.Start(), e.reports)
		})).
		AddWorker(e.processRequests).
		AddWorker(e.processReports).
		Build()

	return e, nil
}

// registerOracles registers every identity once, then opens the gate for the subscriptions.
func (e *Engine) registerOracles(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	registered, err := e.registrar.RegisterAll(ctx, e.config.Accounts)
	if err != nil {
		e.log.Warn().Err(err).Msg("some oracle identities could not be registered")
	}
	if ctx.Err() != nil {
		return
	}
	if registered == 0 {
		e.log.Warn().Msg("no oracle identity is registered, no request will be answered")
	}

	close(e.registered)
	ready()
}

// awaitRegistration blocks until registration finished. It returns false if the
// context was cancelled first.
func (e *Engine) awaitRegistration(ctx context.Context) bool {
	return util.WaitClosed(ctx, e.registered) == nil
}

func (e *Engine) superviseSubscription(name string, subscribe SubscribeFunc) component.ComponentWorker {
	return func(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
		ready()
		if !e.awaitRegistration(ctx) {
			return
		}
		NewSubscriber(e.log, e.metrics, name, subscribe, e.config.Subscriber).Run(ctx)
	}
}

// processRequests hands requests to the dispatcher one by one, in delivery order.
func (e *Engine) processRequests(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	defer e.dispatcher.Stop()

	ready()
	if !e.awaitRegistration(ctx) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case request := <-e.requests:
			e.requestCursor.Observe(request.BlockNumber)
			e.dispatcher.Dispatch(ctx, request)
		}
	}
}

// processReports logs the reports recorded by the contract.
func (e *Engine) processReports(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	ready()
	for {
		select {
		case <-ctx.Done():
			return
		case report := <-e.reports:
			e.reportCursor.Observe(report.BlockNumber)
			e.metrics.ReportReceived()
			e.log.Info().
				Str("airline", report.Airline.Hex()).
				Str("flight", report.Flight).
				Str("timestamp", report.Timestamp.String()).
				Uint8("status_code", uint8(report.Status)).
				Str("status", report.Status.String()).
				Uint64("block_number", report.BlockNumber).
				Msg("oracle report recorded")
		}
	}
}
