package flightsurety

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
)

// oracleRequestEvent mirrors the OracleRequest event inputs.
type oracleRequestEvent struct {
	Index     uint8
	Airline   common.Address
	Flight    string
	Timestamp *big.Int
}

// oracleReportEvent mirrors the OracleReport event inputs.
type oracleReportEvent struct {
	Airline   common.Address
	Flight    string
	Timestamp *big.Int
	Status    uint8
}

func parseOracleRequest(contract *bind.BoundContract, log types.Log) (*oracle.StatusRequest, error) {
	var ev oracleRequestEvent
	if err := contract.UnpackLog(&ev, EventOracleRequest, log); err != nil {
		return nil, fmt.Errorf("could not unpack %s log: %w", EventOracleRequest, err)
	}
	return &oracle.StatusRequest{
		Index:       ev.Index,
		Airline:     ev.Airline,
		Flight:      ev.Flight,
		Timestamp:   ev.Timestamp,
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
	}, nil
}

func parseOracleReport(contract *bind.BoundContract, log types.Log) (*oracle.Report, error) {
	var ev oracleReportEvent
	if err := contract.UnpackLog(&ev, EventOracleReport, log); err != nil {
		return nil, fmt.Errorf("could not unpack %s log: %w", EventOracleReport, err)
	}
	return &oracle.Report{
		Airline:     ev.Airline,
		Flight:      ev.Flight,
		Timestamp:   ev.Timestamp,
		Status:      oracle.StatusCode(ev.Status),
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash,
	}, nil
}
