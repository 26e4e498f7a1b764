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

func (s *Store) ExistsApplicant(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	row := s.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = ? AND phone = ?)`, email, phone)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("applicant is nil")
	}

	var created, updated int64
	row := s.conn.QueryRow(ctx, `INSERT INTO users (email, phone, reddit_username, twitter_username, youtube_username, facebook_username, reddit_verified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`,
		a.Email, a.Phone, a.RedditUsername,
		nullString(a.TwitterUsername), nullString(a.YoutubeUsername), nullString(a.FacebookUsername),
		a.RedditVerified,
	)
	if err := row.Scan(&a.ID, &created, &updated); err != nil {
		if db.IsUniqueViolation(err) {
			s.logger.Warn("applicant insert lost duplicate race", slog.String("email", a.Email))
			return 0, fmt.Errorf("insert applicant: %w", repository.ErrDuplicate)
		}
		return 0, err
	}
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)

	return a.ID, nil
}

// FindApplicantIDByEmail returns the oldest applicant with the given email.
func (s *Store) FindApplicantIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	var id int64
	row := s.conn.QueryRow(ctx, `SELECT id FROM users WHERE email = ? ORDER BY id LIMIT 1`, email)
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

func (s *Store) GetApplicantByID(ctx context.Context, id int64) (*models.Applicant, error) {
	row := s.conn.QueryRow(ctx, `SELECT id, email, phone, reddit_username, twitter_username, youtube_username, facebook_username, reddit_verified, created_at, updated_at
		FROM users WHERE id = ?`, id)

	var a models.Applicant
	var twitter, youtube, facebook sql.NullString
	var created, updated int64
	if err := row.Scan(&a.ID, &a.Email, &a.Phone, &a.RedditUsername, &twitter, &youtube, &facebook, &a.RedditVerified, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	a.TwitterUsername = stringPtr(twitter)
	a.YoutubeUsername = stringPtr(youtube)
	a.FacebookUsername = stringPtr(facebook)
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)

	return &a, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
