package oracles

import (
	"math/rand"

	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module"
)

// RandomStatusMeasurer simulates the measurement of a flight status by drawing
// uniformly from all status codes.
type RandomStatusMeasurer struct{}

var _ module.StatusMeasurer = (*RandomStatusMeasurer)(nil)

func NewRandomStatusMeasurer() *RandomStatusMeasurer {
	return &RandomStatusMeasurer{}
}

func (m *RandomStatusMeasurer) Measure(*oracle.StatusRequest) oracle.StatusCode {
	return oracle.StatusCodes[rand.Intn(len(oracle.StatusCodes))]
}

// FixedStatusMeasurer always reports the same status code.
type FixedStatusMeasurer struct {
	code oracle.StatusCode
}

var _ module.StatusMeasurer = (*FixedStatusMeasurer)(nil)

func NewFixedStatusMeasurer(code oracle.StatusCode) *FixedStatusMeasurer {
	return &FixedStatusMeasurer{code: code}
}

func (m *FixedStatusMeasurer) Measure(*oracle.StatusRequest) oracle.StatusCode {
	return m.code
}
