package repository

import (
	"context"
	"errors"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/models"
)

// ErrDuplicate is returned by Create* methods when a unique index rejects the row.
var ErrDuplicate = errors.New("duplicate record")

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type ApplicantRepo interface {
	ExistsApplicant(ctx context.Context, email, phone string) (bool, error)
	// CreateApplicant inserts a and fills its ID, CreatedAt and UpdatedAt.
	CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error)
	FindApplicantIDByEmail(ctx context.Context, email string) (int64, bool, error)
	GetApplicantByID(ctx context.Context, id int64) (*models.Applicant, error)
}

type ContractorRepo interface {
	ExistsContractorRequest(ctx context.Context, userID int64, companySlug string) (bool, error)
	// CreateContractorRequest inserts c and fills its ID, CreatedAt and UpdatedAt.
	CreateContractorRequest(ctx context.Context, c *models.ContractorRequest) (int64, error)
	GetContractorRequestByID(ctx context.Context, id int64) (*models.ContractorRequest, error)
}
