package oracles

import (
	"context"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
)

// Dispatcher answers status requests on behalf of every matching identity of the pool.
//
// Submissions run on a bounded worker pool. Dispatch only schedules them and never waits
// for the ledger, so the subscription feeding the dispatcher is never blocked by a slow
// or failing submission. Submissions are best effort: failures are logged and dropped.
type Dispatcher struct {
	log      zerolog.Logger
	metrics  module.OracleMetrics
	pool     *oracles.Pool
	measurer module.StatusMeasurer
	contract module.OracleContractClient
	workers  *workerpool.WorkerPool
	timeout  time.Duration
}

// NewDispatcher creates a dispatcher running at most `workers` submissions concurrently.
// Every submission is cancelled after `timeout`.
func NewDispatcher(
	log zerolog.Logger,
	metrics module.OracleMetrics,
	pool *oracles.Pool,
	measurer module.StatusMeasurer,
	contract module.OracleContractClient,
	workers uint,
	timeout time.Duration,
) *Dispatcher {
	return &Dispatcher{
		log:      log.With().Str("module", "oracle_dispatcher").Logger(),
		metrics:  metrics,
		pool:     pool,
		measurer: measurer,
		contract: contract,
		workers:  workerpool.New(int(workers)),
		timeout:  timeout,
	}
}

// Dispatch schedules one submission per identity matching the request index and returns
// the number of submissions scheduled. The context bounds the scheduled submissions.
func (d *Dispatcher) Dispatch(ctx context.Context, request *oracle.StatusRequest) int {
	log := d.log.With().
		Uint8("index", request.Index).
		Str("airline", request.Airline.Hex()).
		Str("flight", request.Flight).
		Str("timestamp", request.Timestamp.String()).
		Uint64("block_number", request.BlockNumber).
		Str("tx_hash", request.TxHash.Hex()).
		Logger()

	matches := d.pool.Matching(request.Index)
	d.metrics.RequestReceived(len(matches))
	if len(matches) == 0 {
		log.Debug().Msg("no oracle identity holds the requested index")
		return 0
	}

	log.Info().Int("matched", len(matches)).Msg("answering status request")

	for _, identity := range matches {
		response := oracle.NewStatusResponse(request, identity.Account, d.measurer.Measure(request))
		d.workers.Submit(func() {
			d.submit(ctx, log, response)
		})
	}
	return len(matches)
}

func (d *Dispatcher) submit(ctx context.Context, log zerolog.Logger, response *oracle.StatusResponse) {
	log = log.With().
		Str("oracle", response.Oracle.Hex()).
		Uint8("status_code", uint8(response.StatusCode)).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.contract.SubmitOracleResponse(ctx, response)
	d.metrics.ResponseSubmitted(time.Since(start), err)
	if err != nil {
		err = oracles.SubmissionFailedError{
			Oracle: response.Oracle,
			Index:  response.Index,
			Err:    err,
		}
		log.Warn().Err(err).Msg("dropping oracle response")
		return
	}

	log.Debug().Str("status", response.StatusCode.String()).Msg("oracle response submitted")
}

// Stop waits for all scheduled submissions to finish. No submissions may be
// dispatched afterwards.
func (d *Dispatcher) Stop() {
	d.workers.StopWait()
}
