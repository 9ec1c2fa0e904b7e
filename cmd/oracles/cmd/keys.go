package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/gerreth/udacity-flight-surety/module/contracts/flightsurety"
)

// loadKeyring returns the signing keys of the fleet. Explicit private keys take
// precedence over the mnemonic.
func loadKeyring() (*flightsurety.Keyring, error) {
	hexKeys := viper.GetStringSlice(flagOracleKeys)
	if len(hexKeys) > 0 {
		return flightsurety.NewKeyringFromHex(hexKeys)
	}

	mnemonic := viper.GetString(flagMnemonic)
	if mnemonic == "" {
		return nil, fmt.Errorf("either --%s or --%s is required", flagMnemonic, flagOracleKeys)
	}
	count := viper.GetUint(flagOracleCount)
	if count == 0 {
		return nil, fmt.Errorf("--%s must be positive", flagOracleCount)
	}
	return flightsurety.NewKeyringFromMnemonic(mnemonic, viper.GetUint(flagFirstAccount), count)
}
