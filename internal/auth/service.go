// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"strings"

	"plusone_backend/internal/common"
	"plusone_backend/internal/config"
	"plusone_backend/internal/user"

	"go.uber.org/zap"
)

// Service handles account creation and authentication.
type Service struct {
	users         user.Repository
	tokens        *TokenService
	search        *user.SearchService
	allowedDomain string
	logger        *zap.Logger
}

// NewService creates the auth service.
func NewService(users user.Repository, tokens *TokenService, search *user.SearchService, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		search:        search,
		allowedDomain: strings.ToLower(cfg.AllowedEmailDomain),
		logger:        logger,
	}
}

// Signup registers a new account. The email must belong to the configured
// domain and must not already be registered. A fresh account starts with an
// empty profile and onboarding at step 1.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	email := user.NormalizeEmail(req.Email)
	if s.allowedDomain != "" && !strings.HasSuffix(email, s.allowedDomain) {
		return nil, common.ErrBadRequest.WithDetails("Email must belong to the " + s.allowedDomain + " domain.")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrConflict.WithDetails("An account with this email already exists.")
	}

	hash, err := common.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Profile:      user.EmptyProfile(),
		Onboarding:   user.DefaultOnboarding(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userID", u.ID.String()))

	// Best-effort; discovery catches up on the next profile update if
	// indexing fails here.
	s.search.IndexUser(ctx, u)

	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user.ToUserResponse(u)}, nil
}

// Login authenticates an account by email and password. Unknown emails and
// wrong passwords produce the same error so the endpoint does not reveal
// which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	invalidCredentials := common.ErrUnauthorized.WithDetails("Invalid email or password.")

	u, err := s.users.FindByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}
	if !common.CheckPasswordHash(req.Password, u.PasswordHash) {
		return nil, invalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("userID", u.ID.String()))
	return &AuthResponse{Token: token, User: user.ToUserResponse(u)}, nil
}
