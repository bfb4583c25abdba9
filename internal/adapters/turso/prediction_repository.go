package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

const maxRetries = 2

// createdAtLayout is fixed width so created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Save(ctx context.Context, rec *domain.PredictionRecord) error {
	p := rec.Prediction
	descriptor, err := json.Marshal(p.Mix)
	if err != nil {
		return fmt.Errorf("failed to encode descriptor: %w", err)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}

	_, err = WithRetry(ctx, maxRetries, func() (sql.Result, error) {
		return r.db.ExecContext(ctx, `
			INSERT INTO predictions (
				id, mix_name, descriptor_json, descriptor_digest, engine_version, coefficients_digest,
				compressive_mpa, tensile_mpa, elastic_modulus_mpa, upv_ms, cost_usd, confidence,
				prediction_json, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, p.Mix.Name, string(descriptor), p.DescriptorDigest, p.EngineVersion, p.CoefficientsDigest,
			p.CompressiveStrength.Value, p.TensileStrength.Value, p.ElasticModulus.Value, p.UPV.Value,
			p.Cost.StringFixed(2), p.Confidence,
			string(body), rec.CreatedAt.UTC().Format(createdAtLayout),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id string) (*domain.PredictionRecord, error) {
	rec, err := WithRetry(ctx, maxRetries, func() (*domain.PredictionRecord, error) {
		row := r.db.QueryRowContext(ctx,
			`SELECT id, prediction_json, created_at FROM predictions WHERE id = ?`, id)
		return scanRecord(row)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return rec, nil
}

func (r *PredictionRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.PredictionRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, prediction_json, created_at FROM predictions`
	args := []any{}
	if opts.Name != "" {
		query += ` WHERE mix_name = ?`
		args = append(args, opts.Name)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	out, err := WithRetry(ctx, maxRetries, func() ([]*domain.PredictionRecord, error) {
		return r.list(ctx, query, args)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return out, nil
}

func (r *PredictionRepository) list(ctx context.Context, query string, args []any) ([]*domain.PredictionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.PredictionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PredictionRepository) Delete(ctx context.Context, id string) error {
	res, err := WithRetry(ctx, maxRetries, func() (sql.Result, error) {
		return r.db.ExecContext(ctx, `DELETE FROM predictions WHERE id = ?`, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete prediction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete prediction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("prediction %s: %w", id, ports.ErrNotFound)
	}
	return nil
}

func (r *PredictionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*domain.PredictionRecord, error) {
	var id, body, createdAt string
	if err := s.Scan(&id, &body, &createdAt); err != nil {
		return nil, err
	}
	rec := &domain.PredictionRecord{ID: id}
	if err := json.Unmarshal([]byte(body), &rec.Prediction); err != nil {
		return nil, fmt.Errorf("failed to decode prediction %s: %w", id, err)
	}
	t, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, createdAt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", id, err)
	}
	rec.CreatedAt = t
	return rec, nil
}
