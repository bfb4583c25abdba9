package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/uhpc/internal/compare"
	"github.com/emiliopalmerini/uhpc/internal/confidence"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/engine"
	"github.com/emiliopalmerini/uhpc/internal/ports"
	"github.com/emiliopalmerini/uhpc/internal/standards"
)

type memRepo struct {
	mu   sync.Mutex
	recs []*domain.PredictionRecord
}

func (r *memRepo) Save(_ context.Context, rec *domain.PredictionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*domain.PredictionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *memRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.PredictionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.PredictionRecord
	for i := len(r.recs) - 1; i >= 0; i-- {
		if opts.Name == "" || r.recs[i].Prediction.Mix.Name == opts.Name {
			out = append(out, r.recs[i])
		}
	}
	return out, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.recs {
		if rec.ID == id {
			r.recs = append(r.recs[:i], r.recs[i+1:]...)
			return nil
		}
	}
	return ports.ErrNotFound
}

func (r *memRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.recs)), nil
}

type recorder struct {
	mu     sync.Mutex
	events []*ports.PredictionEvent
}

func (r *recorder) RecordPrediction(_ context.Context, ev *ports.PredictionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Close(context.Context) error { return nil }

func newService(t *testing.T) (*Service, *memRepo, *recorder) {
	t.Helper()
	repo, rec := &memRepo{}, &recorder{}
	s := New(engine.Default(),
		WithRepository(repo),
		WithMetrics(rec),
		WithLogger(zap.NewNop()),
		WithWorkers(2),
		WithSource("test"),
	)
	return s, repo, rec
}

func preset(t *testing.T, name string) domain.MixDesign {
	t.Helper()
	m, err := domain.Preset(name)
	require.NoError(t, err)
	return m
}

func TestPredict(t *testing.T) {
	s, repo, rec := newService(t)
	ctx := context.Background()

	res, err := s.Predict(ctx, preset(t, "standard-uhpc"), false)
	require.NoError(t, err)
	assert.Empty(t, res.RecordID)
	assert.Len(t, res.Reports, 2)
	assert.Equal(t, domain.ClassVeryHigh, res.Analysis.Class)
	assert.Zero(t, res.Extrapolations())
	assert.Empty(t, repo.recs)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "test", rec.events[0].Source)
	assert.Equal(t, "predict", rec.events[0].Operation)
}

func TestPredict_SaveAndVerify(t *testing.T) {
	s, repo, _ := newService(t)
	ctx := context.Background()

	res, err := s.Predict(ctx, preset(t, "sustainable"), true)
	require.NoError(t, err)
	require.NotEmpty(t, res.RecordID)
	require.Len(t, repo.recs, 1)

	v, err := s.Verify(ctx, res.RecordID)
	require.NoError(t, err)
	assert.True(t, v.SameDescriptor)
	assert.True(t, v.SameEngine)
	assert.True(t, v.Reproduced)

	// A record produced by other coefficients no longer reproduces.
	repo.recs[0].Prediction.CoefficientsDigest = "stale"
	v, err = s.Verify(ctx, res.RecordID)
	require.NoError(t, err)
	assert.False(t, v.SameEngine)
	assert.False(t, v.Reproduced)
}

func TestDescribe_MatchesPredict(t *testing.T) {
	s, _, rec := newService(t)
	res, err := s.Predict(context.Background(), preset(t, "cost-optimized"), false)
	require.NoError(t, err)

	again, err := s.Describe(res.Prediction)
	require.NoError(t, err)
	assert.Equal(t, res.Analysis, again.Analysis)
	assert.Equal(t, res.Reports, again.Reports)
	assert.Len(t, rec.events, 1, "describe records no metrics")
}

func TestPredict_ExtrapolationsCounted(t *testing.T) {
	s, _, rec := newService(t)
	res, err := s.Predict(context.Background(), preset(t, "standard-uhpc").WithAge(2), false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Extrapolations())
	assert.Equal(t, standards.StatusExtrapolated, res.Reports[1].Status)
	assert.Equal(t, 1, rec.events[0].Extrapolations)
	assert.InDelta(t, confidence.Decay(res.Prediction.Confidence, 1), res.Confidence, 1e-12)
	assert.Less(t, res.Confidence, res.Prediction.Confidence)
}

func TestPredict_ConfidenceWithoutExtrapolation(t *testing.T) {
	s, _, _ := newService(t)
	res, err := s.Predict(context.Background(), preset(t, "standard-uhpc"), false)
	require.NoError(t, err)
	assert.Equal(t, res.Prediction.Confidence, res.Confidence)
	assert.Equal(t, confidence.Level(res.Confidence), res.ConfidenceLevel)
}

func TestCompareAndOptimize_CountExtrapolations(t *testing.T) {
	s, _, rec := newService(t)
	ctx := context.Background()

	young := preset(t, "standard-uhpc").WithAge(2).WithName("Young")
	_, err := s.Compare(ctx, []domain.MixDesign{young, preset(t, "sustainable")}, compare.MaxCompressive)
	require.NoError(t, err)

	// Optimization re-ages candidates, so use a cement content outside the
	// calibrated range instead.
	heavy := preset(t, "standard-uhpc").WithName("Heavy")
	heavy.Cement = 520
	_, err = s.Optimize(ctx, compare.DefaultRequirements(), []domain.MixDesign{heavy})
	require.NoError(t, err)

	counts := map[string]int{}
	for _, ev := range rec.events {
		counts[ev.Operation+"/"+ev.MixName] = ev.Extrapolations
	}
	assert.Equal(t, 1, counts["compare/Young"])
	assert.Equal(t, 0, counts["compare/Sustainable Mix"])
	assert.Equal(t, 1, counts["optimize/Heavy"])
}

func TestPredict_InvalidInput(t *testing.T) {
	s, _, rec := newService(t)
	m := preset(t, "standard-uhpc")
	m.Water = -5

	_, err := s.Predict(context.Background(), m, true)
	var invalid *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
	assert.Empty(t, rec.events)
}

func TestHistoryWithoutRepository(t *testing.T) {
	s := New(engine.Default())
	ctx := context.Background()

	_, err := s.Predict(ctx, preset(t, "custom"), true)
	assert.ErrorIs(t, err, ErrNoRepository)
	_, err = s.History(ctx, ports.ListOptions{})
	assert.ErrorIs(t, err, ErrNoRepository)
	assert.ErrorIs(t, s.DeleteRecord(ctx, "x"), ErrNoRepository)

	_, err = s.Predict(ctx, preset(t, "custom"), false)
	assert.NoError(t, err)
}

func TestHistory(t *testing.T) {
	s, _, _ := newService(t)
	ctx := context.Background()

	first, err := s.Predict(ctx, preset(t, "custom"), true)
	require.NoError(t, err)
	_, err = s.Predict(ctx, preset(t, "cost-optimized"), true)
	require.NoError(t, err)

	all, err := s.History(ctx, ports.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := s.Record(ctx, first.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "Custom", got.Prediction.Mix.Name)

	require.NoError(t, s.DeleteRecord(ctx, first.RecordID))
	_, err = s.Record(ctx, first.RecordID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = s.Verify(ctx, first.RecordID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCompareAndOptimize(t *testing.T) {
	s, _, rec := newService(t)
	ctx := context.Background()

	ranked, err := s.Compare(ctx, domain.ComparisonSet(), compare.MinCost)
	require.NoError(t, err)
	assert.Equal(t, "Sustainable UHPC", ranked[0].Prediction.Mix.Name)

	_, err = s.Compare(ctx, nil, compare.MinCost)
	var empty *domain.EmptyInputError
	assert.True(t, errors.As(err, &empty))

	cands, err := s.Optimize(ctx, compare.DefaultRequirements(), nil)
	require.NoError(t, err)
	assert.Len(t, cands, 3)

	assert.Len(t, rec.events, 6)
}

func TestValidate(t *testing.T) {
	s := New(engine.Default())
	all, err := s.Validate(preset(t, "custom"), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := s.Validate(preset(t, "custom"), standards.Eurocode2)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, standards.Eurocode2, one[0].Standard)

	_, err = s.Validate(preset(t, "custom"), "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownStandard)
}

func TestProgressionAndAgreement(t *testing.T) {
	s := New(engine.Default())
	steps, err := s.Progression(preset(t, "custom"), 28)
	require.NoError(t, err)
	assert.Len(t, steps, 5)

	a, err := s.Agreement(preset(t, "custom"))
	require.NoError(t, err)
	assert.Len(t, a.Correlations, 2)
}
