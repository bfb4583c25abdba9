package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/uhpc/internal/adapters/otel"
	"github.com/emiliopalmerini/uhpc/internal/adapters/turso"
	"github.com/emiliopalmerini/uhpc/internal/engine"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

// Compile-time interface conformance checks.
// These verify that concrete adapters properly implement their port interfaces.

func TestPredictorConformance(t *testing.T) {
	var _ ports.Predictor = (*engine.Engine)(nil)
}

func TestPredictionRepositoryConformance(t *testing.T) {
	var _ ports.PredictionRepository = (*turso.PredictionRepository)(nil)
}

func TestMetricsExporterConformance(t *testing.T) {
	var _ ports.MetricsExporter = (*otel.Exporter)(nil)
	var _ ports.MetricsExporter = (*otel.NoOpExporter)(nil)
}
