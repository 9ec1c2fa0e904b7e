package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gerreth/udacity-flight-surety/module/oracles"
)

// Handlers serves read-only views of the oracle pool.
type Handlers struct {
	log      zerolog.Logger
	reporter *oracles.StatusReporter
}

func NewHandlers(log zerolog.Logger, reporter *oracles.StatusReporter) *Handlers {
	return &Handlers{
		log:      log,
		reporter: reporter,
	}
}

// API lists the index triples of all registered oracles.
func (h *Handlers) API(w http.ResponseWriter, _ *http.Request) {
	h.jsonResponse(w, toAPIResponse(h.reporter.Assignments()))
}

// Oracles lists all oracle identities in pool order.
func (h *Handlers) Oracles(w http.ResponseWriter, _ *http.Request) {
	h.jsonResponse(w, toIdentities(h.reporter.Identities()))
}

// Oracle returns a single oracle identity.
func (h *Handlers) Oracle(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]
	if !common.IsHexAddress(account) {
		h.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid account %s", account))
		return
	}

	identity, ok := h.reporter.Identity(common.HexToAddress(account))
	if !ok {
		h.errorResponse(w, http.StatusNotFound, fmt.Sprintf("oracle %s not found", account))
		return
	}
	h.jsonResponse(w, toIdentity(identity))
}

func (h *Handlers) jsonResponse(w http.ResponseWriter, responsePayload interface{}) {
	encoded, err := json.Marshal(responsePayload)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
		h.errorResponse(w, http.StatusInternalServerError, "error generating response")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(encoded)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to write response")
	}
}

// errorResponse sends an HTTP error response to the client with the given return code and a model error with the given
// response message in the response body
func (h *Handlers) errorResponse(w http.ResponseWriter, returnCode int, responseMessage string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(returnCode)
	encodedError, err := json.Marshal(ModelError{
		Code:    int32(returnCode),
		Message: responseMessage,
	})
	if err != nil {
		h.log.Error().Str("response_message", responseMessage).Msg("failed to json encode error message")
		return
	}
	_, err = w.Write(encodedError)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to send error response")
	}
}
