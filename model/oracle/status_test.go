package oracle_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
)

func TestStatusCode(t *testing.T) {
	assert.Len(t, oracle.StatusCodes, 6)
	for _, code := range oracle.StatusCodes {
		assert.True(t, code.Valid())
		assert.NotContains(t, code.String(), "invalid")
	}

	assert.False(t, oracle.StatusCode(15).Valid())
	assert.Equal(t, "invalid(15)", oracle.StatusCode(15).String())
	assert.Equal(t, "late_weather", oracle.StatusLateWeather.String())
}

func TestNewStatusResponse(t *testing.T) {
	request := &oracle.StatusRequest{
		Index:     7,
		Airline:   common.HexToAddress("0x0a"),
		Flight:    "ND1309",
		Timestamp: big.NewInt(1_600_000_000),
	}
	account := common.HexToAddress("0x0b")

	response := oracle.NewStatusResponse(request, account, oracle.StatusOnTime)
	assert.Equal(t, &oracle.StatusResponse{
		Index:      7,
		Airline:    request.Airline,
		Flight:     "ND1309",
		Timestamp:  request.Timestamp,
		StatusCode: oracle.StatusOnTime,
		Oracle:     account,
	}, response)
}
