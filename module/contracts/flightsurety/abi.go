package flightsurety

// FlightSuretyAppABI is the subset of the FlightSuretyApp contract ABI used by the oracle fleet.
const FlightSuretyAppABI = `[
	{
		"type": "function",
		"name": "REGISTRATION_FEE",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "registerOracle",
		"stateMutability": "payable",
		"inputs": [],
		"outputs": []
	},
	{
		"type": "function",
		"name": "getMyIndexes",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint8[3]"}]
	},
	{
		"type": "function",
		"name": "submitOracleResponse",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "index", "type": "uint8"},
			{"name": "airline", "type": "address"},
			{"name": "flight", "type": "string"},
			{"name": "timestamp", "type": "uint256"},
			{"name": "statusCode", "type": "uint8"}
		],
		"outputs": []
	},
	{
		"type": "event",
		"name": "OracleRequest",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "index", "type": "uint8"},
			{"indexed": false, "name": "airline", "type": "address"},
			{"indexed": false, "name": "flight", "type": "string"},
			{"indexed": false, "name": "timestamp", "type": "uint256"}
		]
	},
	{
		"type": "event",
		"name": "OracleReport",
		"anonymous": false,
		"inputs": [
			{"indexed": false, "name": "airline", "type": "address"},
			{"indexed": false, "name": "flight", "type": "string"},
			{"indexed": false, "name": "timestamp", "type": "uint256"},
			{"indexed": false, "name": "status", "type": "uint8"}
		]
	}
]`

const (
	methodRegistrationFee      = "REGISTRATION_FEE"
	methodRegisterOracle       = "registerOracle"
	methodGetMyIndexes         = "getMyIndexes"
	methodSubmitOracleResponse = "submitOracleResponse"

	EventOracleRequest = "OracleRequest"
	EventOracleReport  = "OracleReport"
)
