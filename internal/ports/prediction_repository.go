package ports

import (
	"context"
	"errors"

	"github.com/emiliopalmerini/uhpc/internal/domain"
)

// ErrNotFound is returned by mutating operations on a missing record.
var ErrNotFound = errors.New("not found")

// ListOptions filters a prediction listing.
type ListOptions struct {
	Limit int
	Name  string
}

// PredictionRepository persists logged predictions. Lookups of a missing id
// return (nil, nil).
type PredictionRepository interface {
	Save(ctx context.Context, rec *domain.PredictionRecord) error
	GetByID(ctx context.Context, id string) (*domain.PredictionRecord, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.PredictionRecord, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
