package turso

import (
	"database/sql"

	"github.com/emiliopalmerini/uhpc/internal/ports"
)

// Repositories holds the turso repository implementations as port interfaces.
type Repositories struct {
	Predictions ports.PredictionRepository
}

// NewRepositories creates the repositories from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Predictions: NewPredictionRepository(db),
	}
}
