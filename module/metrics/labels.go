package metrics

const (
	LabelResult = "result"
	LabelEvent  = "event"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
