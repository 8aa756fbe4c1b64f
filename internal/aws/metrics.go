package aws

import (
	"context"
	"log/slog"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metric names published by MetricsRecorder.
const (
	MetricOrdersIngested = "OrdersIngested"
	MetricIngestFailures = "IngestFailures"
)

// MetricsRecorder publishes ingestion counters to CloudWatch. Publishing is
// best effort: failures are logged and never surface to the caller.
type MetricsRecorder struct {
	client    CloudWatchAPI
	namespace string
	logger    *slog.Logger
}

// NewMetricsRecorder returns a recorder writing into namespace.
func NewMetricsRecorder(client CloudWatchAPI, namespace string, logger *slog.Logger) *MetricsRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsRecorder{client: client, namespace: namespace, logger: logger}
}

// OrdersIngested records n successfully stored orders.
func (m *MetricsRecorder) OrdersIngested(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: sdkaws.String(MetricOrdersIngested),
		Unit:       cwtypes.StandardUnitCount,
		Value:      sdkaws.Float64(float64(n)),
	})
}

// IngestFailed records one failed invocation, dimensioned by error kind.
func (m *MetricsRecorder) IngestFailed(ctx context.Context, kind string) {
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: sdkaws.String(MetricIngestFailures),
		Unit:       cwtypes.StandardUnitCount,
		Value:      sdkaws.Float64(1),
		Dimensions: []cwtypes.Dimension{
			{Name: sdkaws.String("Kind"), Value: sdkaws.String(kind)},
		},
	})
}

func (m *MetricsRecorder) put(ctx context.Context, datum cwtypes.MetricDatum) {
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  sdkaws.String(m.namespace),
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		m.logger.WarnContext(ctx, "put metric data failed",
			"metric", sdkaws.ToString(datum.MetricName),
			"error", err)
	}
}
