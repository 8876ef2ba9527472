package external

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"wunderground/internal/types"
)

// NoopFetchMetrics discards every measurement.
type NoopFetchMetrics struct{}

// RecordRequest implements FetchMetrics.
func (NoopFetchMetrics) RecordRequest(context.Context, string, time.Duration, error) {}

// Compile-time assertions.
var (
	_ FetchMetrics = NoopFetchMetrics{}
	_ FetchMetrics = (*CloudWatchFetchMetrics)(nil)
)

// CloudWatchFetchMetrics publishes per-endpoint request metrics to AWS
// CloudWatch.
//
// Metrics emitted:
//   - APIRequest: Dims {Endpoint, Result} -- one per fetch
//   - APILatency: Dims {Endpoint} -- milliseconds
//   - ExternalAPIFailure: Dims {Endpoint} -- only on failure
type CloudWatchFetchMetrics struct {
	client    CloudWatchClient
	namespace string
	logger    *slog.Logger
}

// NewCloudWatchFetchMetrics creates a CloudWatchFetchMetrics. An empty
// namespace falls back to types.MetricNamespace.
func NewCloudWatchFetchMetrics(client CloudWatchClient, namespace string, logger *slog.Logger) *CloudWatchFetchMetrics {
	if namespace == "" {
		namespace = types.MetricNamespace
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CloudWatchFetchMetrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// NewCloudWatchClient loads the default AWS configuration for region and
// returns a CloudWatch client.
func NewCloudWatchClient(ctx context.Context, region string) (*cloudwatch.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for CloudWatch (region=%s): %w", region, err)
	}
	return cloudwatch.NewFromConfig(cfg), nil
}

// RecordRequest implements FetchMetrics. Publishing failures are logged and
// never surface to the caller.
func (m *CloudWatchFetchMetrics) RecordRequest(ctx context.Context, endpoint string, latency time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	endpointDim := cwtypes.Dimension{
		Name:  aws.String(types.DimEndpoint),
		Value: aws.String(endpoint),
	}

	data := []cwtypes.MetricDatum{
		{
			MetricName: aws.String(types.MetricAPIRequest),
			Value:      aws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: []cwtypes.Dimension{
				endpointDim,
				{
					Name:  aws.String(types.DimResult),
					Value: aws.String(result),
				},
			},
		},
		{
			MetricName: aws.String(types.MetricAPILatency),
			Value:      aws.Float64(float64(latency.Milliseconds())),
			Unit:       cwtypes.StandardUnitMilliseconds,
			Dimensions: []cwtypes.Dimension{endpointDim},
		},
	}
	if err != nil {
		data = append(data, cwtypes.MetricDatum{
			MetricName: aws.String(types.MetricExternalAPIFailure),
			Value:      aws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: []cwtypes.Dimension{endpointDim},
		})
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}
	if _, putErr := m.client.PutMetricData(ctx, input); putErr != nil {
		m.logger.Error("failed to record request metric",
			"error", putErr.Error(),
			"endpoint", endpoint,
			"result", result,
		)
	}
}
