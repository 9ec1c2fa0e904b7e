package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	engineoracles "github.com/gerreth/udacity-flight-surety/engine/oracles"
	"github.com/gerreth/udacity-flight-surety/module/contracts/flightsurety"
)

const envPrefix = "ORACLES"

const (
	flagDeployment            = "deployment"
	flagNetwork               = "network"
	flagMnemonic              = "mnemonic"
	flagOracleKeys            = "oracle-keys"
	flagFirstAccount          = "first-account"
	flagOracleCount           = "oracle-count"
	flagRegistrationFee       = "registration-fee"
	flagRegisterGas           = "register-gas"
	flagSubmitGas             = "submit-gas"
	flagHTTPAddr              = "http-addr"
	flagMetricsPort           = "metrics-port"
	flagSubmissionWorkers     = "submission-workers"
	flagSubmissionTimeout     = "submission-timeout"
	flagResubscribe           = "resubscribe"
	flagResubscribeBackoff    = "resubscribe-backoff"
	flagResubscribeBackoffMax = "resubscribe-backoff-max"
	flagFixedStatus           = "fixed-status"
	flagLogLevel              = "loglevel"
	flagLogConsole            = "log-console"
)

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "oracles",
	Short: "Run the oracle fleet of the flight surety app",
	Long: `Registers a fleet of oracle accounts with the FlightSuretyApp contract and answers
every flight status request addressed to one of the indexes assigned to the fleet.

Every flag can also be set through the environment, e.g. ORACLES_MNEMONIC.`,
	SilenceUsage: true,
	RunE:         run,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	addFlags(flags)
	_ = viper.BindPFlags(flags)

	cobra.OnInitialize(initConfig)
}

// addFlags defines the flags of the fleet. Every flag is bound to viper, so it can also
// be set through the environment.
func addFlags(flags *pflag.FlagSet) {
	defaults := engineoracles.DefaultConfig()
	gas := flightsurety.DefaultGasLimits()

	flags.String(flagDeployment, "config.json", "path to the deployment descriptor written by the contract migration")
	flags.String(flagNetwork, "localhost", "network entry of the deployment descriptor")
	flags.String(flagMnemonic, "", "mnemonic the oracle accounts are derived from")
	flags.StringSlice(flagOracleKeys, nil, "hex encoded private keys of the oracle accounts, used instead of the mnemonic")
	flags.Uint(flagFirstAccount, 10, "index of the first oracle account derived from the mnemonic")
	flags.Uint(flagOracleCount, 20, "number of oracle accounts derived from the mnemonic")
	flags.String(flagRegistrationFee, defaults.RegistrationFee.String(), "registration fee in wei paid by every oracle, 0 reads the fee from the contract")
	flags.Uint64(flagRegisterGas, gas.Register, "gas limit of registration transactions")
	flags.Uint64(flagSubmitGas, gas.Submit, "gas limit of response transactions")
	flags.String(flagHTTPAddr, ":3001", "listen address of the status api")
	flags.Uint(flagMetricsPort, 8080, "port of the prometheus metrics server")
	flags.Uint(flagSubmissionWorkers, defaults.SubmissionWorkers, "maximum number of concurrent response submissions")
	flags.Duration(flagSubmissionTimeout, defaults.SubmissionTimeout, "timeout of a single response submission")
	flags.Bool(flagResubscribe, defaults.Subscriber.Resubscribe, "re-open dropped event subscriptions, otherwise rely on an external restart")
	flags.Duration(flagResubscribeBackoff, defaults.Subscriber.Backoff, "initial wait before re-opening a dropped subscription")
	flags.Duration(flagResubscribeBackoffMax, defaults.Subscriber.BackoffMax, "maximum wait before re-opening a dropped subscription")
	flags.Int(flagFixedStatus, -1, "answer every request with this status code, -1 draws a random status")
	flags.String(flagLogLevel, "info", "level for logging output")
	flags.Bool(flagLogConsole, false, "human readable log output")
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	var err error
	log, err = newLogger(viper.GetString(flagLogLevel), viper.GetBool(flagLogConsole))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger(level string, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	if console {
		return zerolog.New(zerolog.NewConsoleWriter()).Level(lvl).With().Timestamp().Logger(), nil
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger(), nil
}
