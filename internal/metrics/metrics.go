// Package metrics provides Prometheus instrumentation for the farm service.
//
// Metrics exposed:
//   - farm_refresh_fetch_total: Counter of live endpoint fetches by result
//   - farm_refresh_fetch_duration_seconds: Histogram of live endpoint latency
//   - farm_samples_appended_total: Counter of chart samples by channel and origin
//   - farm_detail_views_open: Gauge of detail views currently running
//   - farm_grpc_requests_total: Counter of gRPC requests by method and status code
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// Label values
const (
	ResultSuccess = "success"
	ResultError   = "error"

	OriginLive      = "live"
	OriginSynthetic = "synthetic"
)

// Metrics holds the service collectors
type Metrics struct {
	FetchTotal      *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
	SamplesAppended *prometheus.CounterVec
	ViewsOpen       prometheus.Gauge
	GRPCRequests    *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "farm_refresh_fetch_total",
			Help: "Live snapshot fetches by result",
		}, []string{"farm", "result"}),

		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "farm_refresh_fetch_duration_seconds",
			Help:    "Duration of live snapshot fetches",
			Buckets: prometheus.DefBuckets,
		}),

		SamplesAppended: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "farm_samples_appended_total",
			Help: "Chart samples appended by channel and value origin",
		}, []string{"channel", "origin"}),

		ViewsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "farm_detail_views_open",
			Help: "Detail views currently sampling",
		}),

		GRPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "farm_grpc_requests_total",
			Help: "gRPC requests by method and status code",
		}, []string{"method", "code"}),
	}
}

// ObserveFetch records one live fetch
func (m *Metrics) ObserveFetch(farmID string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.FetchTotal.WithLabelValues(farmID, result).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
}

// SampleAppended records one chart sample
func (m *Metrics) SampleAppended(channel domain.Channel, live bool) {
	if m == nil {
		return
	}
	origin := OriginSynthetic
	if live {
		origin = OriginLive
	}
	m.SamplesAppended.WithLabelValues(string(channel), origin).Inc()
}

// ViewOpened and ViewClosed track running detail views
func (m *Metrics) ViewOpened() {
	if m == nil {
		return
	}
	m.ViewsOpen.Inc()
}

func (m *Metrics) ViewClosed() {
	if m == nil {
		return
	}
	m.ViewsOpen.Dec()
}

// GRPCRequest records one finished gRPC call
func (m *Metrics) GRPCRequest(method, code string) {
	if m == nil {
		return
	}
	m.GRPCRequests.WithLabelValues(method, code).Inc()
}
