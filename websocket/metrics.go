// Package websocket - websocket/metrics.go
// file: websocket/metrics.go

package websocket

import (
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"github.com/tanzeelak/tea-rater-frontend/logger"
)

// Namespace for all TeaRater metrics
var metricsNamespace = "TeaRater"

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// metricsEnabled gates publication so local runs without AWS credentials
// stay quiet.
func metricsEnabled() bool {
	return os.Getenv("METRICS_ENABLED") == "true"
}

// PublishDashboardConnections pushes the current dashboard connection count
func PublishDashboardConnections(count int) {
	putMetric("DashboardConnections", float64(count), "Count")
}

// PublishRefreshBroadcasts counts refresh signals fanned out to dashboards
func PublishRefreshBroadcasts(count int) {
	putMetric("RefreshBroadcasts", float64(count), "Count")
}

// PublishDashboardLoadLatency pushes how long the joined four-way fetch took (in ms)
func PublishDashboardLoadLatency(latencyMs float64) {
	putMetric("DashboardLoadLatencyMs", latencyMs, "Milliseconds")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string) {
	if !metricsEnabled() {
		return
	}
	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
