package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Amos-136/maditrack/internal/auth"
	"github.com/Amos-136/maditrack/internal/domain"
	"github.com/Amos-136/maditrack/internal/repository"

	"go.uber.org/zap"
)

// User-facing messages. The front-end toasts these verbatim, so they
// must not drift from the strings it expects.
const (
	MsgSignupSuccess           = "Compte créé avec succès"
	MsgValidationFailed        = "Validation échouée"
	MsgRateLimited             = "Un compte avec cet email a déjà été créé récemment. Veuillez réessayer plus tard."
	MsgOrgCreationFailed       = "Impossible de créer l'organisation"
	MsgPrincipalCreationFailed = "Impossible de créer le compte utilisateur"
	MsgUnexpectedError         = "Erreur serveur inattendue"
)

// SignupErrorKind classifies provisioning failures.
type SignupErrorKind string

const (
	ErrKindValidation        SignupErrorKind = "validation"
	ErrKindRateLimited       SignupErrorKind = "rate_limited"
	ErrKindOrgCreation       SignupErrorKind = "org_creation"
	ErrKindPrincipalCreation SignupErrorKind = "principal_creation"
)

// SignupError is the structured failure result of ProvisionTenant.
// Details carries the full ordered validation list for ErrKindValidation,
// or the underlying storage/auth error text otherwise.
type SignupError struct {
	Kind    SignupErrorKind
	Message string
	Details []string
}

func (e *SignupError) Error() string {
	if len(e.Details) > 0 {
		return e.Message + ": " + strings.Join(e.Details, "; ")
	}
	return e.Message
}

// SignupRequest is the untrusted tenant-creation request.
type SignupRequest struct {
	FullName             string `json:"fullName"`
	OrganizationName     string `json:"organizationName"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	OrganizationCategory string `json:"organizationCategory"`
}

// SignupResult is the minimal success payload: nothing beyond what the
// signup form needs to proceed.
type SignupResult struct {
	PrincipalID string `json:"id"`
	Email       string `json:"email"`
}

// SignupService provisions a tenant and its first administrative user
// atomically from the caller's point of view.
type SignupService interface {
	ProvisionTenant(ctx context.Context, req SignupRequest) (*SignupResult, error)
}

type signupService struct {
	orgs       repository.OrganizationsRepository
	principals repository.PrincipalsRepository
	hasher     auth.PasswordHasher
	window     time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewSignupService creates the signup orchestrator. window is the
// lookback used by the duplicate-signup guard.
func NewSignupService(
	orgs repository.OrganizationsRepository,
	principals repository.PrincipalsRepository,
	hasher auth.PasswordHasher,
	window time.Duration,
	logger *zap.Logger,
) SignupService {
	return &signupService{
		orgs:       orgs,
		principals: principals,
		hasher:     hasher,
		window:     window,
		logger:     logger,
		now:        time.Now,
	}
}

// ProvisionTenant runs the signup sequence:
//
//	Validating -> RateLimitChecking -> CreatingTenant -> CreatingPrincipal -> Done
//
// with a compensating delete of the organization on the
// CreatingPrincipal failure edge. Each request is processed exactly
// once, synchronously; no state is re-entered.
func (s *signupService) ProvisionTenant(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	// 1. Validating — no storage call before this passes.
	if msgs := validateSignup(req); len(msgs) > 0 {
		return nil, &SignupError{Kind: ErrKindValidation, Message: MsgValidationFailed, Details: msgs}
	}

	fullName := strings.TrimSpace(req.FullName)
	orgName := strings.TrimSpace(req.OrganizationName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. RateLimitChecking — advisory early rejection. A lookback failure
	// is logged and ignored; the unique email constraint on principals is
	// the hard guarantee against duplicates.
	since := s.now().Add(-s.window)
	count, err := s.orgs.CountRecentByEmail(ctx, email, since)
	if err != nil {
		s.logger.Warn("Duplicate-signup lookback failed, continuing",
			zap.String("email", email),
			zap.Error(err),
		)
	} else if count > 0 {
		return nil, &SignupError{Kind: ErrKindRateLimited, Message: MsgRateLimited}
	}

	// 3. CreatingTenant
	orgID, err := s.orgs.CreateOrganization(ctx, &domain.Organization{
		Name:     orgName,
		Category: req.OrganizationCategory,
		Email:    email,
	})
	if err != nil {
		s.logger.Error("Organization creation failed", zap.Error(err))
		return nil, &SignupError{Kind: ErrKindOrgCreation, Message: MsgOrgCreationFailed, Details: []string{err.Error()}}
	}

	// Compensation guard: until the principal insert is confirmed, the
	// organization created above must not outlive this request. Deferred
	// so the delete runs on every failure exit below, panics included.
	committed := false
	defer func() {
		if !committed {
			s.compensate(orgID)
		}
	}()

	// Hash before the insert: CPU-bound work stays outside the auth call.
	passwordHash, err := s.hasher.HashPassword(ctx, req.Password)
	if err != nil {
		s.logger.Error("Password hashing failed", zap.Error(err))
		return nil, &SignupError{Kind: ErrKindPrincipalCreation, Message: MsgPrincipalCreationFailed, Details: []string{err.Error()}}
	}

	// 4. CreatingPrincipal — only after the organization exists durably.
	principalID, err := s.principals.CreatePrincipal(ctx, &domain.Principal{
		OrgID:          orgID,
		Email:          email,
		PasswordHash:   passwordHash,
		FullName:       fullName,
		EmailConfirmed: true, // auto-confirm for faster onboarding
	})
	if err != nil {
		s.logger.Error("Principal creation failed",
			zap.String("org_id", orgID),
			zap.Error(err),
		)
		return nil, &SignupError{Kind: ErrKindPrincipalCreation, Message: MsgPrincipalCreationFailed, Details: []string{err.Error()}}
	}

	// 5. Done
	committed = true
	return &SignupResult{PrincipalID: principalID, Email: email}, nil
}

// compensate deletes an organization whose principal was never created.
// It runs on a fresh context: the delete must happen even when the
// original caller has already disconnected.
func (s *signupService) compensate(orgID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.orgs.DeleteOrganization(ctx, orgID)
	if errors.Is(err, repository.ErrNotFound) {
		// Already gone, likely swept concurrently. Nothing left to undo.
		s.logger.Info("Organization already removed before compensation",
			zap.String("org_id", orgID),
		)
		return
	}
	if err != nil {
		// Unresolved inconsistency: an organization with no principal is
		// left behind. The orphan reconciler sweeps these.
		s.logger.Error("Compensating organization delete failed, orphan left behind",
			zap.String("org_id", orgID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Rolled back organization after principal creation failure",
		zap.String("org_id", orgID),
	)
}
