package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
	"github.com/crewscore/crewscore/internal/infra/auth"
)

// AuthenticationResult holds an issued access token. Decoupled from any
// transport type.
type AuthenticationResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// AuthService establishes identity: it exchanges credentials for tokens and
// tokens for an AuthenticationContext. It is the only component that touches
// secrets; everything past it sees the context alone.
type AuthService struct {
	persons      domain.PersonRepository
	credentials  domain.CredentialStore
	tokenManager *auth.TokenManager
	tokenTTL     time.Duration
	audit        domain.AuditLogger
}

func NewAuthService(
	persons domain.PersonRepository,
	credentials domain.CredentialStore,
	tokenManager *auth.TokenManager,
	tokenTTL time.Duration,
	audit domain.AuditLogger,
) *AuthService {
	return &AuthService{
		persons:      persons,
		credentials:  credentials,
		tokenManager: tokenManager,
		tokenTTL:     tokenTTL,
		audit:        audit,
	}
}

// Authenticate verifies email and password and issues a signed token. Every
// failure collapses into the same generic AuthenticationError so callers
// cannot probe which emails exist.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*AuthenticationResult, error) {
	person, err := s.persons.FindByEmail(ctx, email)
	if err != nil {
		s.audit.AuditLog(ctx, "", "authenticate", "", false, err)
		return nil, apperrors.NewAuthenticationError("invalid credentials", email)
	}

	if !person.CanAuthenticateWithEmail(email) {
		s.audit.AuditLog(ctx, person.ID.String(), "authenticate", "", false, nil)
		return nil, apperrors.NewAuthenticationError("invalid credentials", email)
	}

	cred, err := s.credentials.FindByEmail(ctx, person.Email)
	if err != nil {
		s.audit.AuditLog(ctx, person.ID.String(), "authenticate", "", false, err)
		return nil, apperrors.NewAuthenticationError("invalid credentials", email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		s.audit.AuditLog(ctx, person.ID.String(), "authenticate", "", false, err)
		return nil, apperrors.NewAuthenticationError("invalid credentials", email)
	}

	accessToken, err := s.tokenManager.GenerateToken(
		person.ID.String(), person.Email, []string{string(person.Role)}, s.tokenTTL)
	if err != nil {
		return nil, apperrors.NewAuthenticationError("failed to issue token", email)
	}

	s.audit.AuditLog(ctx, person.ID.String(), "authenticate", "", true, nil)
	return &AuthenticationResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

// ContextFromToken validates a token and builds the per-request
// AuthenticationContext. Any failure yields the anonymous context together
// with an AuthenticationError; callers must pass the context on explicitly
// and never stash it in ambient state.
func (s *AuthService) ContextFromToken(ctx context.Context, tokenString string) (domain.AuthenticationContext, error) {
	claims, err := s.tokenManager.ValidateToken(ctx, tokenString)
	if err != nil {
		return domain.AnonymousContext(), apperrors.NewAuthenticationError("invalid token", "")
	}

	userID, err := domain.PersonIDFromString(claims.UserID)
	if err != nil {
		return domain.AnonymousContext(), apperrors.NewAuthenticationError("invalid token subject", claims.Email)
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		role, err := domain.ParseRole(r)
		if err != nil {
			return domain.AnonymousContext(), apperrors.NewAuthenticationError("invalid token role", claims.Email)
		}
		roles = append(roles, role)
	}

	return domain.NewAuthenticationContext(userID, claims.Email, roles), nil
}

// Revoke invalidates a token for the rest of its lifetime.
func (s *AuthService) Revoke(ctx context.Context, tokenString string) error {
	return s.tokenManager.Revoke(ctx, tokenString)
}
