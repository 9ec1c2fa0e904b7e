package rest

import (
	"github.com/gerreth/udacity-flight-surety/model/oracle"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
)

// apiMessage is the greeting of the legacy endpoint served to the dapp.
const apiMessage = "An API for use with your Dapp!"

// APIResponse is the body of the legacy `/api` endpoint.
type APIResponse struct {
	Message string  `json:"message"`
	Oracles [][]int `json:"oracles"`
}

// Identity is the representation of an oracle identity.
type Identity struct {
	Account    string `json:"account"`
	Registered bool   `json:"registered"`
	Indexes    []int  `json:"indexes,omitempty"`
}

// ModelError is the body of every error response.
type ModelError struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

func toIndexes(indexes oracle.Indexes) []int {
	ints := make([]int, 0, len(indexes))
	for _, index := range indexes {
		ints = append(ints, int(index))
	}
	return ints
}

func toAPIResponse(assignments []oracles.IndexAssignment) APIResponse {
	response := APIResponse{
		Message: apiMessage,
		Oracles: make([][]int, 0, len(assignments)),
	}
	for _, assignment := range assignments {
		response.Oracles = append(response.Oracles, toIndexes(assignment.Indexes))
	}
	return response
}

func toIdentity(identity *oracle.Identity) Identity {
	model := Identity{
		Account:    identity.Account.Hex(),
		Registered: identity.Registered,
	}
	if identity.Registered {
		model.Indexes = toIndexes(identity.Indexes)
	}
	return model
}

func toIdentities(identities oracle.IdentityList) []Identity {
	models := make([]Identity, 0, len(identities))
	for _, identity := range identities {
		models = append(models, toIdentity(identity))
	}
	return models
}
