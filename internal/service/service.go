// Package service ties the engine, validator and comparison layer to the
// prediction log and metrics. The CLI and the HTTP API both go through it.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/uhpc/internal/compare"
	"github.com/emiliopalmerini/uhpc/internal/confidence"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
	"github.com/emiliopalmerini/uhpc/internal/standards"
)

// ErrNoRepository is returned when a history operation runs without a prediction log.
var ErrNoRepository = errors.New("prediction log is not configured")

// Service is safe for concurrent use.
type Service struct {
	predictor ports.Predictor
	repo      ports.PredictionRepository
	metrics   ports.MetricsExporter
	log       *zap.Logger
	workers   int
	source    string
}

// Option configures a Service.
type Option func(*Service)

func WithRepository(r ports.PredictionRepository) Option {
	return func(s *Service) { s.repo = r }
}

func WithMetrics(m ports.MetricsExporter) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = n }
}

// WithSource labels metrics with the calling surface (cli, http).
func WithSource(src string) Option {
	return func(s *Service) { s.source = src }
}

// New builds a service around a predictor.
func New(p ports.Predictor, opts ...Option) *Service {
	s := &Service{predictor: p, log: zap.NewNop(), workers: compare.DefaultWorkers, source: "cli"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is a prediction with its derived indicators and validation reports.
// Confidence is the model confidence lowered for every extrapolated input.
type Result struct {
	Prediction      domain.Prediction  `json:"prediction"`
	Analysis        domain.Analysis    `json:"analysis"`
	Reports         []standards.Report `json:"validation"`
	Confidence      float64            `json:"confidence"`
	ConfidenceLevel string             `json:"confidence_level"`
	RecordID        string             `json:"record_id,omitempty"`
}

// Extrapolations counts the distinct fields flagged by any standard.
func (r Result) Extrapolations() int {
	return countExtrapolations(r.Reports)
}

func countExtrapolations(reports []standards.Report) int {
	seen := map[string]bool{}
	for _, rep := range reports {
		for _, w := range rep.Warnings() {
			seen[w.Field] = true
		}
	}
	return len(seen)
}

// Predict evaluates m, validates it against every standard and optionally logs it.
func (s *Service) Predict(ctx context.Context, m domain.MixDesign, save bool) (*Result, error) {
	if save && s.repo == nil {
		return nil, ErrNoRepository
	}
	p, err := s.predictor.Predict(m)
	if err != nil {
		return nil, err
	}
	res, err := s.Describe(p)
	if err != nil {
		return nil, err
	}

	if save {
		rec := domain.NewPredictionRecord(p)
		if err := s.repo.Save(ctx, rec); err != nil {
			return nil, err
		}
		res.RecordID = rec.ID
	}

	s.log.Debug("prediction",
		zap.String("mix", m.Label("unnamed")),
		zap.Float64("compressive_mpa", p.CompressiveStrength.Value),
		zap.String("cost_usd", p.Cost.StringFixed(2)),
		zap.Int("extrapolations", res.Extrapolations()),
		zap.String("record_id", res.RecordID),
	)
	s.record(ctx, "predict", p, res.Extrapolations())
	return res, nil
}

// Describe derives the analysis and validation reports for a prediction that
// was already made, such as a logged one.
func (s *Service) Describe(p domain.Prediction) (*Result, error) {
	reports, err := standards.ValidateAll(p.Mix)
	if err != nil {
		return nil, err
	}
	res := &Result{Prediction: p, Analysis: domain.Analyze(p), Reports: reports}
	res.Confidence = confidence.Clamp(confidence.Decay(p.Confidence, res.Extrapolations()))
	res.ConfidenceLevel = confidence.Level(res.Confidence)
	return res, nil
}

// Validate checks m against one standard, or every standard when id is empty.
func (s *Service) Validate(m domain.MixDesign, id standards.ID) ([]standards.Report, error) {
	if id == "" {
		return standards.ValidateAll(m)
	}
	r, err := standards.Validate(m, id)
	if err != nil {
		return nil, err
	}
	return []standards.Report{r}, nil
}

// Compare ranks mixes by the objective.
func (s *Service) Compare(ctx context.Context, mixes []domain.MixDesign, obj compare.Objective) ([]compare.Ranked, error) {
	ranked, err := compare.Rank(ctx, s.predictor, mixes, obj, compare.WithWorkers(s.workers))
	if err != nil {
		return nil, err
	}
	for _, r := range ranked {
		s.record(ctx, "compare", r.Prediction, s.extrapolations(r.Prediction.Mix))
	}
	return ranked, nil
}

// Optimize evaluates the candidate families against the requirements.
func (s *Service) Optimize(ctx context.Context, req compare.Requirements, candidates []domain.MixDesign) ([]compare.Candidate, error) {
	out, err := compare.Optimize(ctx, s.predictor, req, candidates, compare.WithWorkers(s.workers))
	if err != nil {
		return nil, err
	}
	for _, c := range out {
		s.record(ctx, "optimize", c.Prediction, s.extrapolations(c.Prediction.Mix))
	}
	return out, nil
}

// Progression predicts m across the key curing ages.
func (s *Service) Progression(m domain.MixDesign, maxAge float64) ([]compare.Step, error) {
	return compare.Progression(s.predictor, m, maxAge)
}

// Agreement compares the strength development of m with the reference curves.
func (s *Service) Agreement(m domain.MixDesign) (standards.Agreement, error) {
	return standards.Agree(s.predictor, m)
}

func (s *Service) extrapolations(m domain.MixDesign) int {
	reports, err := standards.ValidateAll(m)
	if err != nil {
		s.log.Warn("failed to validate mix", zap.String("mix", m.Label("unnamed")), zap.Error(err))
		return 0
	}
	return countExtrapolations(reports)
}

func (s *Service) record(ctx context.Context, op string, p domain.Prediction, extrapolations int) {
	if s.metrics == nil {
		return
	}
	err := s.metrics.RecordPrediction(ctx, &ports.PredictionEvent{
		Source:         s.source,
		Operation:      op,
		MixName:        p.Mix.Name,
		EngineVersion:  p.EngineVersion,
		CompressiveMPA: p.CompressiveStrength.Value,
		CostUSD:        p.CostFloat(),
		Extrapolations: extrapolations,
	})
	if err != nil {
		s.log.Warn("failed to record metrics", zap.Error(err))
	}
}

func (s *Service) requireRepo() error {
	if s.repo == nil {
		return ErrNoRepository
	}
	return nil
}

// History lists logged predictions, newest first.
func (s *Service) History(ctx context.Context, opts ports.ListOptions) ([]*domain.PredictionRecord, error) {
	if err := s.requireRepo(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, opts)
}

// Record returns one logged prediction, or ports.ErrNotFound.
func (s *Service) Record(ctx context.Context, id string) (*domain.PredictionRecord, error) {
	if err := s.requireRepo(); err != nil {
		return nil, err
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("prediction %s: %w", id, ports.ErrNotFound)
	}
	return rec, nil
}

// DeleteRecord removes a logged prediction.
func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	if err := s.requireRepo(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Verification compares a logged prediction with a fresh one.
type Verification struct {
	Record         *domain.PredictionRecord `json:"record"`
	Current        domain.Prediction        `json:"current"`
	SameDescriptor bool                     `json:"same_descriptor"`
	SameEngine     bool                     `json:"same_engine"`
	Reproduced     bool                     `json:"reproduced"`
}

// Verify re-predicts the stored descriptor of a logged prediction.
func (s *Service) Verify(ctx context.Context, id string) (*Verification, error) {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return nil, err
	}
	stored := rec.Prediction
	current, err := s.predictor.Predict(stored.Mix)
	if err != nil {
		return nil, fmt.Errorf("failed to re-predict %s: %w", id, err)
	}
	return &Verification{
		Record:         rec,
		Current:        current,
		SameDescriptor: stored.DescriptorDigest == current.DescriptorDigest,
		SameEngine:     stored.EngineVersion == current.EngineVersion && stored.CoefficientsDigest == current.CoefficientsDigest,
		Reproduced:     stored.SameAs(current),
	}, nil
}
