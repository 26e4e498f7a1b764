package mock

import (
	"context"
	"sync"
	"time"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/models"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Applicants  *mockApplicantRepo
	Contractors *mockContractorRepo
	Verifier    *mockVerifier
}

func NewMocks() *Mocks {
	return &Mocks{
		Applicants:  &mockApplicantRepo{},
		Contractors: &mockContractorRepo{},
		Verifier:    &mockVerifier{Verified: true},
	}
}

var _ repository.ApplicantRepo = (*mockApplicantRepo)(nil)
var _ repository.ContractorRepo = (*mockContractorRepo)(nil)

type mockApplicantRepo struct {
	mu     sync.Mutex
	Stored []models.Applicant

	ExistsErr error
	CreateErr error
	FindErr   error
}

func (m *mockApplicantRepo) ExistsApplicant(ctx context.Context, email, phone string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Stored {
		if a.Email == email && a.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicantRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	a.ID = int64(len(m.Stored) + 1)
	a.CreatedAt, a.UpdatedAt = now, now
	m.Stored = append(m.Stored, *a)
	return a.ID, nil
}

func (m *mockApplicantRepo) FindApplicantIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	if m.FindErr != nil {
		return 0, false, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Stored {
		if a.Email == email {
			return a.ID, true, nil
		}
	}
	return 0, false, nil
}

func (m *mockApplicantRepo) GetApplicantByID(ctx context.Context, id int64) (*models.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Stored {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

type mockContractorRepo struct {
	mu     sync.Mutex
	Stored []models.ContractorRequest

	ExistsErr error
	CreateErr error
}

func (m *mockContractorRepo) ExistsContractorRequest(ctx context.Context, userID int64, companySlug string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Stored {
		if c.UserID == userID && c.CompanySlug == companySlug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockContractorRepo) CreateContractorRequest(ctx context.Context, c *models.ContractorRequest) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	c.ID = int64(len(m.Stored) + 1)
	c.CreatedAt, c.UpdatedAt = now, now
	m.Stored = append(m.Stored, *c)
	return c.ID, nil
}

func (m *mockContractorRepo) GetContractorRequestByID(ctx context.Context, id int64) (*models.ContractorRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Stored {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

type mockVerifier struct {
	Verified bool
	Err      error
	Calls    []string
}

func (m *mockVerifier) Verify(ctx context.Context, username string) (bool, error) {
	m.Calls = append(m.Calls, username)
	if m.Err != nil {
		return false, m.Err
	}
	return m.Verified, nil
}
