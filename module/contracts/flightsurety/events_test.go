package flightsurety

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
)

func parsedABI(t *testing.T) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(FlightSuretyAppABI))
	require.NoError(t, err)
	return parsed
}

func eventLog(t *testing.T, parsed abi.ABI, name string, args ...interface{}) types.Log {
	ev, ok := parsed.Events[name]
	require.True(t, ok)
	data, err := ev.Inputs.Pack(args...)
	require.NoError(t, err)
	return types.Log{
		Topics:      []common.Hash{ev.ID},
		Data:        data,
		BlockNumber: 42,
		TxHash:      common.HexToHash("0x01"),
	}
}

func TestParseOracleRequest(t *testing.T) {
	parsed := parsedABI(t)
	contract := bind.NewBoundContract(common.Address{}, parsed, nil, nil, nil)
	airline := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	t.Run("well formed", func(t *testing.T) {
		log := eventLog(t, parsed, EventOracleRequest, uint8(5), airline, "LH123", big.NewInt(1_600_000_000))

		request, err := parseOracleRequest(contract, log)
		require.NoError(t, err)
		assert.Equal(t, uint8(5), request.Index)
		assert.Equal(t, airline, request.Airline)
		assert.Equal(t, "LH123", request.Flight)
		assert.Equal(t, 0, big.NewInt(1_600_000_000).Cmp(request.Timestamp))
		assert.Equal(t, uint64(42), request.BlockNumber)
		assert.Equal(t, log.TxHash, request.TxHash)
	})

	t.Run("truncated data", func(t *testing.T) {
		log := eventLog(t, parsed, EventOracleRequest, uint8(5), airline, "LH123", big.NewInt(1))
		log.Data = log.Data[:40]

		_, err := parseOracleRequest(contract, log)
		assert.Error(t, err)
	})
}

func TestParseOracleReport(t *testing.T) {
	parsed := parsedABI(t)
	contract := bind.NewBoundContract(common.Address{}, parsed, nil, nil, nil)
	airline := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	log := eventLog(t, parsed, EventOracleReport, airline, "UA7", big.NewInt(1_700_000_000), uint8(oracle.StatusLateWeather))

	report, err := parseOracleReport(contract, log)
	require.NoError(t, err)
	assert.Equal(t, airline, report.Airline)
	assert.Equal(t, "UA7", report.Flight)
	assert.Equal(t, 0, big.NewInt(1_700_000_000).Cmp(report.Timestamp))
	assert.Equal(t, oracle.StatusLateWeather, report.Status)
}

func TestSubmitOracleResponsePacking(t *testing.T) {
	parsed := parsedABI(t)

	// the argument types sent by SubmitOracleResponse must match the method signature
	_, err := parsed.Pack(methodSubmitOracleResponse,
		uint8(7),
		common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		"LH123",
		big.NewInt(1_600_000_000),
		uint8(oracle.StatusOnTime),
	)
	require.NoError(t, err)
}

func TestWebsocketURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8545", WebsocketURL("http://localhost:8545"))
	assert.Equal(t, "wss://node.example.org", WebsocketURL("https://node.example.org"))
	assert.Equal(t, "ws://localhost:8545", WebsocketURL("ws://localhost:8545"))
	assert.Equal(t, "/tmp/geth.ipc", WebsocketURL("/tmp/geth.ipc"))
}
