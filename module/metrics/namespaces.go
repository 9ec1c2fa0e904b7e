package metrics

// Prometheus metric namespaces
const (
	namespaceFlightSurety = "flight_surety"
)

// Oracle fleet subsystems
const (
	subsystemOracles = "oracles"
	subsystemRest    = "rest"
)
