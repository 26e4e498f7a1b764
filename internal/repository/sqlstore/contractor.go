package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/db"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/models"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/repository"
)

func (s *Store) ExistsContractorRequest(ctx context.Context, userID int64, companySlug string) (bool, error) {
	var exists bool
	row := s.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contractors WHERE user_id = ? AND company_slug = ?)`, userID, companySlug)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) CreateContractorRequest(ctx context.Context, c *models.ContractorRequest) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("contractor request is nil")
	}
	if c.Status == "" {
		c.Status = models.ContractorStatusPending
	}

	var created, updated int64
	row := s.conn.QueryRow(ctx, `INSERT INTO contractors (user_id, email, company_slug, company_name, status, joined_slack, can_start_job)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`,
		c.UserID, c.Email, c.CompanySlug, c.CompanyName, string(c.Status), c.JoinedSlack, c.CanStartJob,
	)
	if err := row.Scan(&c.ID, &created, &updated); err != nil {
		if db.IsUniqueViolation(err) {
			s.logger.Warn("contractor request insert lost duplicate race", slog.Int64("user_id", c.UserID), slog.String("company_slug", c.CompanySlug))
			return 0, fmt.Errorf("insert contractor request: %w", repository.ErrDuplicate)
		}
		return 0, err
	}
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)

	return c.ID, nil
}

func (s *Store) GetContractorRequestByID(ctx context.Context, id int64) (*models.ContractorRequest, error) {
	row := s.conn.QueryRow(ctx, `SELECT id, user_id, email, company_slug, company_name, status, joined_slack, can_start_job, created_at, updated_at
		FROM contractors WHERE id = ?`, id)

	var c models.ContractorRequest
	var status string
	var created, updated int64
	if err := row.Scan(&c.ID, &c.UserID, &c.Email, &c.CompanySlug, &c.CompanyName, &status, &c.JoinedSlack, &c.CanStartJob, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c.Status = models.ContractorStatus(status)
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)

	return &c, nil
}
