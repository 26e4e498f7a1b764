// Package intake runs the applicant intake, user lookup and contractor
// request workflows on top of the repositories and the Reddit verifier.
package intake

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/validation"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/models"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/reddit"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/repository"
)

// Verifier answers whether a Reddit username exists. It returns
// *reddit.CredentialsMissingError when it cannot run at all.
type Verifier interface {
	Verify(ctx context.Context, username string) (bool, error)
}

type Service struct {
	applicants  repository.ApplicantRepo
	contractors repository.ContractorRepo
	verifier    Verifier
	validator   *validation.Validator
	logger      *slog.Logger
}

func NewService(applicants repository.ApplicantRepo, contractors repository.ContractorRepo, verifier Verifier, validator *validation.Validator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		applicants:  applicants,
		contractors: contractors,
		verifier:    verifier,
		validator:   validator,
		logger:      logger,
	}
}

// Application is the outcome of a successful intake.
type Application struct {
	Applicant      *models.Applicant
	MatchedCompany models.MatchedCompany
}

// SubmitApplication validates the payload, rejects known (email, phone)
// pairs, verifies the Reddit username and stores the applicant. Every
// accepted applicant is matched to the same marketplace offer.
func (s *Service) SubmitApplication(ctx context.Context, payload map[string]any) (*Application, error) {
	in, err := s.validator.Applicant(ctx, payload)
	if err != nil {
		return nil, validationError(err)
	}

	exists, err := s.applicants.ExistsApplicant(ctx, in.Email, in.Phone)
	if err != nil {
		return nil, storageError(err)
	}
	if exists {
		return nil, &Error{Kind: KindDuplicate, Message: MsgApplicantDuplicate}
	}

	verified, err := s.verifier.Verify(ctx, in.RedditUsername)
	if err != nil {
		var cerr *reddit.CredentialsMissingError
		if errors.As(err, &cerr) {
			s.logger.Error("reddit credentials missing", slog.Any("missing", cerr.Missing))
			return nil, &Error{Kind: KindConfig, Message: MsgCredentials, Detail: cerr.Error(), Err: err}
		}
		s.logger.Warn("reddit verification error", slog.String("username", in.RedditUsername), slog.String("error", err.Error()))
		verified = false
	}
	if !verified {
		return nil, &Error{Kind: KindVerification, Message: redditNotFoundMessage(in.RedditUsername)}
	}

	a := &models.Applicant{
		Email:            in.Email,
		Phone:            in.Phone,
		RedditUsername:   in.RedditUsername,
		TwitterUsername:  in.TwitterUsername,
		YoutubeUsername:  in.YoutubeUsername,
		FacebookUsername: in.FacebookUsername,
		RedditVerified:   true,
	}
	if _, err := s.applicants.CreateApplicant(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &Error{Kind: KindDuplicate, Message: MsgApplicantDuplicate, Err: err}
		}
		return nil, storageError(err)
	}

	s.logger.Info("applicant stored", slog.Int64("applicant_id", a.ID), slog.String("reddit_username", a.RedditUsername))
	return &Application{Applicant: a, MatchedCompany: models.MarketplaceOffer}, nil
}

// CheckUserExists reports whether an applicant with exactly this email and
// phone exists.
func (s *Service) CheckUserExists(ctx context.Context, payload map[string]any) (bool, error) {
	email, _ := payload["email"].(string)
	phone, _ := payload["phone"].(string)
	if email == "" || phone == "" {
		return false, &Error{Kind: KindValidation, Message: MsgEmailPhoneRequired}
	}

	exists, err := s.applicants.ExistsApplicant(ctx, email, phone)
	if err != nil {
		return false, storageError(err)
	}
	return exists, nil
}

// RequestToJoin records a pending request from an existing applicant to join
// a company. When authEmail is set it must match the payload email.
func (s *Service) RequestToJoin(ctx context.Context, payload map[string]any, authEmail string) (*models.ContractorRequest, error) {
	in, err := s.validator.ContractorRequest(ctx, payload)
	if err != nil {
		return nil, validationError(err)
	}
	if authEmail != "" && !strings.EqualFold(authEmail, in.Email) {
		return nil, &Error{Kind: KindForbidden, Message: MsgEmailMismatch}
	}

	userID, found, err := s.applicants.FindApplicantIDByEmail(ctx, in.Email)
	if err != nil {
		return nil, storageError(err)
	}
	if !found {
		return nil, &Error{Kind: KindNotFound, Message: MsgUserNotFound}
	}

	exists, err := s.contractors.ExistsContractorRequest(ctx, userID, in.CompanySlug)
	if err != nil {
		return nil, storageError(err)
	}
	if exists {
		return nil, &Error{Kind: KindDuplicate, Message: MsgContractorDuplicate}
	}

	c := &models.ContractorRequest{
		UserID:      userID,
		Email:       in.Email,
		CompanySlug: in.CompanySlug,
		CompanyName: in.CompanyName,
		Status:      models.ContractorStatusPending,
		JoinedSlack: true,
		CanStartJob: false,
	}
	if _, err := s.contractors.CreateContractorRequest(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &Error{Kind: KindDuplicate, Message: MsgContractorDuplicate, Err: err}
		}
		return nil, storageError(err)
	}

	s.logger.Info("contractor request stored", slog.Int64("request_id", c.ID), slog.Int64("applicant_id", userID), slog.String("company_slug", c.CompanySlug))
	return c, nil
}

func validationError(err error) *Error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return &Error{Kind: KindValidation, Message: verr.Error(), Err: err}
	}
	if errors.Is(err, validation.ErrMalformedBody) {
		return &Error{Kind: KindMalformedBody, Message: err.Error(), Err: err}
	}
	return storageError(err)
}
