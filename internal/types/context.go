package types

import "context"

// Context Keys
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	endpointKey  contextKey = "endpoint"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithEndpoint tags the context with the service endpoint being called
// (e.g. "conditions", "autocomplete"). The transport uses it as a metric
// dimension and log field.
func WithEndpoint(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, endpointKey, name)
}

// GetEndpoint retrieves the endpoint name from the context, or "unknown".
func GetEndpoint(ctx context.Context) string {
	if name, ok := ctx.Value(endpointKey).(string); ok && name != "" {
		return name
	}
	return "unknown"
}
