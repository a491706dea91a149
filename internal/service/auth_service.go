package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Amos-136/maditrack/internal/auth"
	"github.com/Amos-136/maditrack/internal/repository"
	"github.com/Amos-136/maditrack/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService authenticates principals and manages their sessions.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// ResolveSession returns the session bound to the token, or ErrMiss.
	ResolveSession(ctx context.Context, token string) (*Session, error)
}

// LoginRequest login credentials plus client info for logging.
type LoginRequest struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResponse returned to the signin form.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	OrgID       string `json:"organization_id"`
	OrgName     string `json:"organization_name"`
}

// Session is what the KV stores per token.
type Session struct {
	PrincipalID string `json:"principal_id"`
	OrgID       string `json:"org_id"`
	Email       string `json:"email"`
}

type authService struct {
	principals repository.PrincipalsRepository
	orgs       repository.OrganizationsRepository
	hasher     auth.PasswordHasher
	sessions   store.KV
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(
	principals repository.PrincipalsRepository,
	orgs repository.OrganizationsRepository,
	hasher auth.PasswordHasher,
	sessions store.KV,
	sessionTTL time.Duration,
	logger *zap.Logger,
) AuthService {
	return &authService{
		principals: principals,
		orgs:       orgs,
		hasher:     hasher,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		s.logger.Warn("Login failed: missing credentials",
			zap.String("ip_address", req.IPAddress),
			zap.String("user_agent", req.UserAgent),
		)
		return nil, fmt.Errorf("email et mot de passe requis")
	}

	p, err := s.principals.GetPrincipalByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Login failed: unknown email",
				zap.String("ip_address", req.IPAddress),
			)
			return nil, fmt.Errorf("identifiants invalides")
		}
		return nil, fmt.Errorf("failed to look up principal: %w", err)
	}

	ok, err := s.hasher.VerifyPassword(ctx, req.Password, p.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.logger.Warn("Login failed: wrong password",
			zap.String("principal_id", p.PrincipalID),
			zap.String("ip_address", req.IPAddress),
		)
		return nil, fmt.Errorf("identifiants invalides")
	}

	orgName := ""
	if org, err := s.orgs.GetOrganization(ctx, p.OrgID); err == nil {
		orgName = org.Name
	}

	token := uuid.NewString()
	sess, err := json.Marshal(Session{PrincipalID: p.PrincipalID, OrgID: p.OrgID, Email: p.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.sessions.Set(ctx, sessionKey(token), string(sess), s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Login succeeded",
		zap.String("principal_id", p.PrincipalID),
		zap.String("org_id", p.OrgID),
	)

	return &LoginResponse{
		AccessToken: token,
		UserID:      p.PrincipalID,
		Email:       p.Email,
		FullName:    p.FullName,
		OrgID:       p.OrgID,
		OrgName:     orgName,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	return s.sessions.Del(ctx, sessionKey(token))
}

func (s *authService) ResolveSession(ctx context.Context, token string) (*Session, error) {
	raw, err := s.sessions.Get(ctx, sessionKey(token))
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
