package turso_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emiliopalmerini/uhpc/internal/adapters/turso"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/engine"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

func record(t *testing.T, preset string, at time.Time) *domain.PredictionRecord {
	t.Helper()
	m, err := domain.Preset(preset)
	if err != nil {
		t.Fatalf("Preset(%q): %v", preset, err)
	}
	p, err := engine.Default().Predict(m)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	rec := domain.NewPredictionRecord(p)
	rec.CreatedAt = at
	return rec
}

func TestPredictionRepository(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := turso.NewPredictionRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := record(t, "standard-uhpc", base)
	second := record(t, "sustainable", base.Add(time.Minute))
	third := record(t, "standard-uhpc", base.Add(2*time.Minute))

	for _, rec := range []*domain.PredictionRecord{first, second, third} {
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 predictions, got %d", n)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if !got.Prediction.SameAs(first.Prediction) {
		t.Errorf("stored prediction differs: %+v", got.Prediction)
	}
	if got.Prediction.Mix != first.Prediction.Mix {
		t.Errorf("stored descriptor differs: %+v", got.Prediction.Mix)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("expected created_at %v, got %v", base, got.CreatedAt)
	}

	missing, err := repo.GetByID(ctx, "does-not-exist")
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil) for missing id, got (%v, %v)", missing, err)
	}

	all, err := repo.List(ctx, ports.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != third.ID || all[2].ID != first.ID {
		t.Errorf("expected newest first, got %d records", len(all))
	}

	limited, err := repo.List(ctx, ports.ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != third.ID {
		t.Errorf("expected only the newest record")
	}

	named, err := repo.List(ctx, ports.ListOptions{Name: "Sustainable Mix"})
	if err != nil {
		t.Fatalf("List by name failed: %v", err)
	}
	if len(named) != 1 || named[0].ID != second.ID {
		t.Errorf("expected the sustainable record, got %d records", len(named))
	}

	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, second.ID); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	n, _ = repo.Count(ctx)
	if n != 2 {
		t.Errorf("expected 2 predictions after delete, got %d", n)
	}
}

func TestPredictionRepository_ListOrdersSubMillisecondTimestamps(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := turso.NewPredictionRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := record(t, "standard-uhpc", base.Add(120*time.Millisecond))
	newer := record(t, "sustainable", base.Add(123*time.Millisecond))
	newest := record(t, "cost-optimized", base.Add(time.Second))

	for _, rec := range []*domain.PredictionRecord{newest, older, newer} {
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	all, err := repo.List(ctx, ports.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	want := []string{newest.ID, newer.ID, older.ID}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: expected %s (%v), got %s (%v)",
				i, id, []time.Time{newest.CreatedAt, newer.CreatedAt, older.CreatedAt}[i], all[i].ID, all[i].CreatedAt)
		}
	}
	if !all[2].CreatedAt.Equal(older.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", older.CreatedAt, all[2].CreatedAt)
	}
}

func TestRepositories(t *testing.T) {
	repos := turso.NewRepositories(testDB(t))
	if repos.Predictions == nil {
		t.Fatal("expected predictions repository")
	}
}

func TestIsStreamError(t *testing.T) {
	if turso.IsStreamError(nil) {
		t.Error("nil is not a stream error")
	}
	if !turso.IsStreamError(errors.New("hrana: stream not found")) {
		t.Error("expected stream error")
	}
}

func TestWithRetry(t *testing.T) {
	calls := 0
	got, err := turso.WithRetry(context.Background(), 2, func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("stream not found")
		}
		return 42, nil
	})
	if err != nil || got != 42 || calls != 2 {
		t.Errorf("WithRetry = (%d, %v) after %d calls", got, err, calls)
	}

	calls = 0
	_, err = turso.WithRetry(context.Background(), 3, func() (int, error) {
		calls++
		return 0, errors.New("constraint failed")
	})
	if err == nil || calls != 1 {
		t.Errorf("non-stream errors should not be retried, got %d calls", calls)
	}
}
