package external

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

// FetchMetrics records the outcome of each call to the weather service.
type FetchMetrics interface {
	// RecordRequest is called once per fetch with the endpoint name from
	// the context, the wall time spent, and the error (nil on success).
	RecordRequest(ctx context.Context, endpoint string, latency time.Duration, err error)
}

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for testability.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}
