package sqlstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	dbfs "github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/db"
	dbpkg "github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/db"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/repository/sqlstore"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/models"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/repository"
)

func setupStore(t *testing.T) (*sqlstore.Store, *dbpkg.DB) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, dbpkg.DriverSQLite, filepath.Join(t.TempDir(), "store.db"), nil, nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return sqlstore.New(d, nil), d
}

func strPtr(s string) *string { return &s }

func TestApplicantCRUD(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.CreateApplicant(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil applicant")
	}

	got, err := store.GetApplicantByID(ctx, 9999)
	if err != nil {
		t.Fatalf("expected no error for missing id, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %#v", got)
	}

	a := &models.Applicant{
		Email:           "jane@example.com",
		Phone:           "5551234567",
		RedditUsername:  "spez",
		TwitterUsername: strPtr("jane_t"),
		RedditVerified:  true,
	}
	id, err := store.CreateApplicant(ctx, a)
	if err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}
	if id == 0 || a.ID != id {
		t.Fatalf("expected id to be set, got id=%d a.ID=%d", id, a.ID)
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be populated")
	}

	got, err = store.GetApplicantByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetApplicantByID: %v %#v", err, got)
	}
	if got.Email != a.Email || got.Phone != a.Phone || got.RedditUsername != "spez" {
		t.Fatalf("unexpected applicant: %#v", got)
	}
	if !got.RedditVerified {
		t.Fatalf("expected reddit_verified=true")
	}
	if got.TwitterUsername == nil || *got.TwitterUsername != "jane_t" {
		t.Fatalf("unexpected twitter username: %v", got.TwitterUsername)
	}
	if got.YoutubeUsername != nil || got.FacebookUsername != nil {
		t.Fatalf("expected absent optional usernames to stay nil")
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, a.CreatedAt)
	}
}

func TestExistsApplicant_MatchesPairOnly(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.CreateApplicant(ctx, &models.Applicant{Email: "a@example.com", Phone: "5551234567", RedditUsername: "spez"}); err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}

	cases := []struct {
		email, phone string
		want         bool
	}{
		{"a@example.com", "5551234567", true},
		{"a@example.com", "5559999999", false},
		{"b@example.com", "5551234567", false},
	}
	for _, tc := range cases {
		got, err := store.ExistsApplicant(ctx, tc.email, tc.phone)
		if err != nil {
			t.Fatalf("ExistsApplicant(%q,%q): %v", tc.email, tc.phone, err)
		}
		if got != tc.want {
			t.Fatalf("ExistsApplicant(%q,%q)=%v want %v", tc.email, tc.phone, got, tc.want)
		}
	}
}

func TestCreateApplicant_DuplicatePair(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	first := &models.Applicant{Email: "a@example.com", Phone: "5551234567", RedditUsername: "spez"}
	if _, err := store.CreateApplicant(ctx, first); err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}

	_, err := store.CreateApplicant(ctx, &models.Applicant{Email: "a@example.com", Phone: "5551234567", RedditUsername: "other"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// same email, different phone is a distinct applicant
	if _, err := store.CreateApplicant(ctx, &models.Applicant{Email: "a@example.com", Phone: "5559999999", RedditUsername: "spez"}); err != nil {
		t.Fatalf("expected second phone to be accepted: %v", err)
	}
}

func TestFindApplicantIDByEmail_Oldest(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, found, err := store.FindApplicantIDByEmail(ctx, "nobody@example.com")
	if err != nil || found {
		t.Fatalf("expected not found, got found=%v err=%v", found, err)
	}

	firstID, err := store.CreateApplicant(ctx, &models.Applicant{Email: "a@example.com", Phone: "5551234567", RedditUsername: "spez"})
	if err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}
	if _, err := store.CreateApplicant(ctx, &models.Applicant{Email: "a@example.com", Phone: "5559999999", RedditUsername: "spez"}); err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}

	id, found, err := store.FindApplicantIDByEmail(ctx, "a@example.com")
	if err != nil || !found {
		t.Fatalf("expected found, got found=%v err=%v", found, err)
	}
	if id != firstID {
		t.Fatalf("expected oldest id %d, got %d", firstID, id)
	}
}

func TestContractorRequestCRUD(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.CreateContractorRequest(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil contractor request")
	}

	userID, err := store.CreateApplicant(ctx, &models.Applicant{Email: "a@example.com", Phone: "5551234567", RedditUsername: "spez"})
	if err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}

	exists, err := store.ExistsContractorRequest(ctx, userID, "acme")
	if err != nil || exists {
		t.Fatalf("expected no request yet, got exists=%v err=%v", exists, err)
	}

	c := &models.ContractorRequest{
		UserID:      userID,
		Email:       "a@example.com",
		CompanySlug: "acme",
		CompanyName: "Acme",
		JoinedSlack: true,
	}
	id, err := store.CreateContractorRequest(ctx, c)
	if err != nil {
		t.Fatalf("CreateContractorRequest: %v", err)
	}
	if c.Status != models.ContractorStatusPending {
		t.Fatalf("expected default status pending, got %q", c.Status)
	}

	got, err := store.GetContractorRequestByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetContractorRequestByID: %v %#v", err, got)
	}
	if got.Status != models.ContractorStatusPending || !got.JoinedSlack || got.CanStartJob {
		t.Fatalf("unexpected flags: %#v", got)
	}
	if got.UserID != userID || got.CompanySlug != "acme" || got.CompanyName != "Acme" {
		t.Fatalf("unexpected request: %#v", got)
	}

	exists, err = store.ExistsContractorRequest(ctx, userID, "acme")
	if err != nil || !exists {
		t.Fatalf("expected request to exist, got exists=%v err=%v", exists, err)
	}

	_, err = store.CreateContractorRequest(ctx, &models.ContractorRequest{UserID: userID, Email: "a@example.com", CompanySlug: "acme", CompanyName: "Acme"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if _, err := store.CreateContractorRequest(ctx, &models.ContractorRequest{UserID: userID, Email: "a@example.com", CompanySlug: "globex", CompanyName: "Globex"}); err != nil {
		t.Fatalf("different company should be accepted: %v", err)
	}

	missing, err := store.GetContractorRequestByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil,nil for missing id, got %#v %v", missing, err)
	}
}

func TestContractorRequest_UnknownUser(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.CreateContractorRequest(ctx, &models.ContractorRequest{UserID: 4242, Email: "x@example.com", CompanySlug: "acme", CompanyName: "Acme"})
	if err == nil {
		t.Fatalf("expected foreign key failure for unknown user")
	}
	if errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("foreign key failure must not be reported as duplicate")
	}
}

func TestUpdatedAtAdvancesOnMutation(t *testing.T) {
	store, d := setupStore(t)
	ctx := context.Background()

	a := &models.Applicant{Email: "a@example.com", Phone: "5551234567", RedditUsername: "spez"}
	id, err := store.CreateApplicant(ctx, a)
	if err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}
	if a.UpdatedAt.Before(a.CreatedAt) {
		t.Fatalf("updated_at before created_at on insert")
	}

	if _, err := d.Exec(ctx, `UPDATE users SET reddit_verified = ? WHERE id = ?`, true, id); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetApplicantByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetApplicantByID: %v", err)
	}
	if !got.UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("expected updated_at to advance: before=%v after=%v", a.UpdatedAt, got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("created_at changed on update")
	}

	cID, err := store.CreateContractorRequest(ctx, &models.ContractorRequest{UserID: id, Email: a.Email, CompanySlug: "acme", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("CreateContractorRequest: %v", err)
	}
	before, _ := store.GetContractorRequestByID(ctx, cID)
	if _, err := d.Exec(ctx, `UPDATE contractors SET status = ? WHERE id = ?`, string(models.ContractorStatusAccepted), cID); err != nil {
		t.Fatalf("update contractor: %v", err)
	}
	after, _ := store.GetContractorRequestByID(ctx, cID)
	if after.Status != models.ContractorStatusAccepted {
		t.Fatalf("expected accepted, got %q", after.Status)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("expected contractor updated_at to advance")
	}
}

func TestStore_Postgres(t *testing.T) {
	dsn := os.Getenv("FDU_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FDU_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	d, err := dbpkg.New(ctx, dbpkg.DriverPostgres, dsn, nil, nil)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer d.Close()
	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := d.Exec(ctx, `DELETE FROM users WHERE email = ?`, "pg-store@example.com"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	store := sqlstore.New(d, nil)
	a := &models.Applicant{Email: "pg-store@example.com", Phone: "5551234567", RedditUsername: "spez", RedditVerified: true}
	id, err := store.CreateApplicant(ctx, a)
	if err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}
	if _, err := store.CreateApplicant(ctx, &models.Applicant{Email: a.Email, Phone: a.Phone, RedditUsername: "spez"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	exists, err := store.ExistsApplicant(ctx, a.Email, a.Phone)
	if err != nil || !exists {
		t.Fatalf("ExistsApplicant: %v %v", exists, err)
	}
	if _, err := store.CreateContractorRequest(ctx, &models.ContractorRequest{UserID: id, Email: a.Email, CompanySlug: "acme", CompanyName: "Acme", JoinedSlack: true}); err != nil {
		t.Fatalf("CreateContractorRequest: %v", err)
	}
	if _, err := d.Exec(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
