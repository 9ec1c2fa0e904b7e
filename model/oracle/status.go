package oracle

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// StatusCode is the flight status reported by an oracle.
type StatusCode uint8

const (
	StatusUnknown       StatusCode = 0
	StatusOnTime        StatusCode = 10
	StatusLateAirline   StatusCode = 20
	StatusLateWeather   StatusCode = 30
	StatusLateTechnical StatusCode = 40
	StatusLateOther     StatusCode = 50
)

// StatusCodes lists every status code the contract accepts.
var StatusCodes = []StatusCode{
	StatusUnknown,
	StatusOnTime,
	StatusLateAirline,
	StatusLateWeather,
	StatusLateTechnical,
	StatusLateOther,
}

// Valid returns true if the code is one of StatusCodes.
func (s StatusCode) Valid() bool {
	switch s {
	case StatusUnknown, StatusOnTime, StatusLateAirline, StatusLateWeather, StatusLateTechnical, StatusLateOther:
		return true
	}
	return false
}

func (s StatusCode) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusOnTime:
		return "on_time"
	case StatusLateAirline:
		return "late_airline"
	case StatusLateWeather:
		return "late_weather"
	case StatusLateTechnical:
		return "late_technical"
	case StatusLateOther:
		return "late_other"
	}
	return fmt.Sprintf("invalid(%d)", uint8(s))
}

// StatusRequest is emitted by the contract when a flight status is requested.
// Oracles holding Index are expected to answer it.
type StatusRequest struct {
	Index     uint8
	Airline   common.Address
	Flight    string
	Timestamp *big.Int

	// delivery metadata, only used for logging
	BlockNumber uint64
	TxHash      common.Hash
}

func (r *StatusRequest) String() string {
	return fmt.Sprintf("request(index=%d, airline=%s, flight=%s, timestamp=%s)",
		r.Index, r.Airline.Hex(), r.Flight, r.Timestamp)
}

// StatusResponse is the answer of a single oracle to a StatusRequest.
type StatusResponse struct {
	Index      uint8
	Airline    common.Address
	Flight     string
	Timestamp  *big.Int
	StatusCode StatusCode

	// Oracle is the account the response is submitted from.
	Oracle common.Address
}

// NewStatusResponse builds the response of the given oracle to a request.
func NewStatusResponse(request *StatusRequest, oracle common.Address, code StatusCode) *StatusResponse {
	return &StatusResponse{
		Index:      request.Index,
		Airline:    request.Airline,
		Flight:     request.Flight,
		Timestamp:  request.Timestamp,
		StatusCode: code,
		Oracle:     oracle,
	}
}

// Report is emitted by the contract whenever it records an oracle response.
// Reports are informational for the fleet.
type Report struct {
	Airline   common.Address
	Flight    string
	Timestamp *big.Int
	Status    StatusCode

	BlockNumber uint64
	TxHash      common.Hash
}

func (r *Report) String() string {
	return fmt.Sprintf("report(airline=%s, flight=%s, timestamp=%s, status=%s)",
		r.Airline.Hex(), r.Flight, r.Timestamp, r.Status)
}
