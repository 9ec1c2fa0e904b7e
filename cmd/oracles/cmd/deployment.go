package cmd

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Deployment is the entry of one network in the deployment descriptor.
type Deployment struct {
	URL         string         `mapstructure:"url" validate:"required,url"`
	AppAddress  common.Address `mapstructure:"appAddress" validate:"required"`
	DataAddress common.Address `mapstructure:"dataAddress"`
}

// loadDeployment reads the entry of the given network from the deployment descriptor.
func loadDeployment(path string, network string) (Deployment, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	err := v.ReadInConfig()
	if err != nil {
		return Deployment{}, fmt.Errorf("could not read deployment descriptor %s: %w", path, err)
	}

	// viper lower-cases keys, so the network name is matched case-insensitively
	if !v.IsSet(network) {
		return Deployment{}, fmt.Errorf("network %q not found in deployment descriptor %s", network, path)
	}

	var deployment Deployment
	err = v.UnmarshalKey(network, &deployment, viper.DecodeHook(stringToAddressHookFunc()))
	if err != nil {
		return Deployment{}, fmt.Errorf("could not decode deployment of network %q: %w", network, err)
	}

	err = validator.New().Struct(deployment)
	if err != nil {
		return Deployment{}, fmt.Errorf("invalid deployment of network %q: %w", network, err)
	}
	return deployment, nil
}

// stringToAddressHookFunc decodes hex strings into addresses. Strings which are not
// hex addresses are rejected instead of being truncated to an address.
func stringToAddressHookFunc() mapstructure.DecodeHookFuncType {
	addressType := reflect.TypeOf(common.Address{})

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != addressType {
			return data, nil
		}
		hex := data.(string)
		if !common.IsHexAddress(hex) {
			return nil, fmt.Errorf("invalid address %q", hex)
		}
		return common.HexToAddress(hex), nil
	}
}
