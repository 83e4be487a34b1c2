package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveFetch("FARM1", 10*time.Millisecond, nil)
	m.ObserveFetch("FARM1", 20*time.Millisecond, errors.New("boom"))
	m.ObserveFetch("FARM1", 5*time.Millisecond, nil)

	if got := testutil.ToFloat64(m.FetchTotal.WithLabelValues("FARM1", ResultSuccess)); got != 2 {
		t.Fatalf("expected 2 successful fetches, got %f", got)
	}
	if got := testutil.ToFloat64(m.FetchTotal.WithLabelValues("FARM1", ResultError)); got != 1 {
		t.Fatalf("expected 1 failed fetch, got %f", got)
	}
	if samples := testutil.CollectAndCount(m.FetchDuration); samples != 1 {
		t.Fatalf("expected a single histogram series, got %d", samples)
	}

	m.SampleAppended(domain.ChannelTemperature, true)
	m.SampleAppended(domain.ChannelTemperature, false)
	m.SampleAppended(domain.ChannelTemperature, false)
	if got := testutil.ToFloat64(m.SamplesAppended.WithLabelValues("temperature", OriginSynthetic)); got != 2 {
		t.Fatalf("expected 2 synthetic samples, got %f", got)
	}

	m.ViewOpened()
	m.ViewOpened()
	m.ViewClosed()
	if got := testutil.ToFloat64(m.ViewsOpen); got != 1 {
		t.Fatalf("expected 1 open view, got %f", got)
	}

	m.GRPCRequest("/farm.v1.FarmService/ListFarms", "OK")
	if got := testutil.ToFloat64(m.GRPCRequests.WithLabelValues("/farm.v1.FarmService/ListFarms", "OK")); got != 1 {
		t.Fatalf("expected 1 grpc request, got %f", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveFetch("FARM1", time.Second, nil)
	m.SampleAppended(domain.ChannelSunlight, false)
	m.ViewOpened()
	m.ViewClosed()
	m.GRPCRequest("x", "OK")
}
