package cmd

import (
	"context"
	"fmt"
	"math/big"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	engineoracles "github.com/gerreth/udacity-flight-surety/engine/oracles"
	"github.com/gerreth/udacity-flight-surety/engine/oracles/rest"
	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module"
	"github.com/gerreth/udacity-flight-surety/module/component"
	"github.com/gerreth/udacity-flight-surety/module/contracts/flightsurety"
	"github.com/gerreth/udacity-flight-surety/module/irrecoverable"
	"github.com/gerreth/udacity-flight-surety/module/metrics"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
	"github.com/gerreth/udacity-flight-surety/module/util"
)

func run(cmd *cobra.Command, _ []string) error {
	deployment, err := loadDeployment(viper.GetString(flagDeployment), viper.GetString(flagNetwork))
	if err != nil {
		return err
	}

	keys, err := loadKeyring()
	if err != nil {
		return fmt.Errorf("could not load oracle keys: %w", err)
	}

	measurer, err := statusMeasurer(viper.GetInt(flagFixedStatus))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info().
		Str("network", viper.GetString(flagNetwork)).
		Str("url", deployment.URL).
		Str("app_address", deployment.AppAddress.Hex()).
		Int("oracles", keys.Len()).
		Msg("starting oracle fleet")

	gas := flightsurety.GasLimits{
		Register: viper.GetUint64(flagRegisterGas),
		Submit:   viper.GetUint64(flagSubmitGas),
	}
	client, ethClient, err := flightsurety.Dial(ctx, log, deployment.URL, deployment.AppAddress, keys, gas)
	if err != nil {
		return err
	}
	defer ethClient.Close()

	fee, err := registrationFee(ctx, client, viper.GetString(flagRegistrationFee))
	if err != nil {
		return err
	}

	config := engineoracles.Config{
		Accounts:          keys.Accounts(),
		RegistrationFee:   fee,
		SubmissionWorkers: viper.GetUint(flagSubmissionWorkers),
		SubmissionTimeout: viper.GetDuration(flagSubmissionTimeout),
		Subscriber: engineoracles.SubscriberConfig{
			Resubscribe:   viper.GetBool(flagResubscribe),
			Backoff:       viper.GetDuration(flagResubscribeBackoff),
			BackoffMax:    viper.GetDuration(flagResubscribeBackoffMax),
			JitterPercent: engineoracles.DefaultSubscriberConfig().JitterPercent,
		},
	}

	pool := oracles.NewPool()
	engine, err := engineoracles.New(
		log,
		metrics.NewOracleCollector(prometheus.DefaultRegisterer),
		pool,
		client,
		measurer,
		config,
	)
	if err != nil {
		return fmt.Errorf("could not create oracle engine: %w", err)
	}

	components := []component.Component{
		metrics.NewServer(log, viper.GetUint(flagMetricsPort), prometheus.DefaultGatherer),
		rest.NewServer(
			log,
			viper.GetString(flagHTTPAddr),
			oracles.NewStatusReporter(pool),
			metrics.NewRestCollector(prometheus.DefaultRegisterer),
		),
		engine,
	}

	return runComponents(ctx, components, engine)
}

// runComponents starts all components and blocks until they shut down, either because
// the context was cancelled or because one of them threw an irrecoverable error.
func runComponents(parent context.Context, components []component.Component, engine module.ReadyDoneAware) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
	for _, c := range components {
		c.Start(signalerCtx)
	}

	go func() {
		select {
		case <-engine.Ready():
			log.Info().Msg("oracle fleet registered and answering requests")
		case <-ctx.Done():
		}
	}()

	var err error
	select {
	case err = <-errChan:
		log.Error().Err(err).Msg("unrecoverable error, shutting down")
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	cancel()
	doneComponents := make([]module.ReadyDoneAware, 0, len(components))
	for _, c := range components {
		doneComponents = append(doneComponents, c)
	}
	<-util.AllDone(doneComponents...)

	if err != nil {
		return fmt.Errorf("oracle fleet failed: %w", err)
	}
	return nil
}

// registrationFee parses the configured fee. A fee of 0 is read from the contract.
func registrationFee(ctx context.Context, client *flightsurety.Client, configured string) (*big.Int, error) {
	fee, ok := new(big.Int).SetString(configured, 10)
	if !ok || fee.Sign() < 0 {
		return nil, fmt.Errorf("invalid registration fee %q", configured)
	}
	if fee.Sign() > 0 {
		return fee, nil
	}

	fee, err := client.RegistrationFee(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Str("fee", fee.String()).Msg("using registration fee of the contract")
	return fee, nil
}

// statusMeasurer returns the measurer answering requests with the given fixed status,
// or drawing random statuses if the status is negative.
func statusMeasurer(fixed int) (module.StatusMeasurer, error) {
	if fixed < 0 {
		return oracles.NewRandomStatusMeasurer(), nil
	}
	code := oracle.StatusCode(fixed)
	if fixed > 255 || !code.Valid() {
		return nil, fmt.Errorf("invalid status code %d, must be one of %v", fixed, oracle.StatusCodes)
	}
	return oracles.NewFixedStatusMeasurer(code), nil
}
