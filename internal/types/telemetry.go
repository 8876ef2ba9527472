package types

// Telemetry metric names for CloudWatch.
// All components MUST use these constants.
const (
	// Metric Names
	MetricAPILatency         = "APILatency"
	MetricExternalAPIFailure = "ExternalAPIFailure"
	MetricAPIRequest         = "APIRequest"

	// Dimension Keys
	DimEndpoint = "Endpoint"
	DimResult   = "Result"

	// Metric Namespace
	MetricNamespace = "Wunderground"
)
