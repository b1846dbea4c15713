package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordSlipGenerated(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSlipGenerated("balanced", 17, 2, 0.003)
	})
}

func TestRecordSlipCacheEvents(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSlipCacheHit()
		RecordSlipCacheMiss()
	})
}

func TestRecordFixtureFetch(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		source string
		result string
	}{
		{
			name:   "api success",
			source: "football_api",
			result: "success",
		},
		{
			name:   "api failure",
			source: "football_api",
			result: "error",
		},
		{
			name:   "synthetic fallback",
			source: "synthetic",
			result: "success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordFixtureFetch(tt.source, tt.result, 0.12)
			})
		})
	}
}

func TestUpdateActiveJackpots(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		count float64
	}{
		{
			name:  "several open",
			count: 3,
		},
		{
			name:  "none open",
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateActiveJackpots(tt.count)
			})
		})
	}
}

func TestUpdateSlipCacheHitRatio(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateSlipCacheHitRatio(0.75)
	})
}

func TestRecordCSVExport(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCSVExport()
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordSlipGenerated(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordSlipGenerated("balanced", 17, 2, 0.003)
	}
}

func BenchmarkRecordFixtureFetch(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordFixtureFetch("synthetic", "success", 0.001)
	}
}
