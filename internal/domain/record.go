package domain

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord is a prediction kept in the prediction log.
type PredictionRecord struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Prediction Prediction `json:"prediction"`
}

// NewPredictionRecord wraps p with a fresh id and timestamp.
func NewPredictionRecord(p Prediction) *PredictionRecord {
	return &PredictionRecord{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Prediction: p,
	}
}
