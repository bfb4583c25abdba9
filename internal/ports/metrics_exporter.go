package ports

import "context"

// MetricsExporter exports prediction metrics to an external observability system.
type MetricsExporter interface {
	// RecordPrediction records one completed prediction.
	RecordPrediction(ctx context.Context, ev *PredictionEvent) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// PredictionEvent describes a prediction for metrics purposes.
type PredictionEvent struct {
	Source        string // cli or http
	Operation     string // predict, compare, optimize...
	MixName       string
	EngineVersion string

	CompressiveMPA float64
	CostUSD        float64
	Extrapolations int
}
