package sqlstore

import (
	"log/slog"
	"time"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/db"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/repository"
)

// Store implements the repository interfaces on top of the internal DB
// wrapper. The same SQL runs on SQLite and Postgres.
type Store struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure Store implements the public interfaces.
var _ repository.ApplicantRepo = (*Store)(nil)
var _ repository.ContractorRepo = (*Store)(nil)

func New(conn *db.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{conn: conn, logger: logger}
}

// fromMillis converts the epoch-millisecond columns written by the database.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
