package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/dto"
	"github.com/SscSPs/budget_approval_app/internal/middleware"
	"github.com/SscSPs/budget_approval_app/internal/platform/config"
	"github.com/SscSPs/budget_approval_app/internal/utils"
)

// authService authenticates the single configured operator.
type authService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login validates the operator credentials and issues a JWT.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Username != s.cfg.OperatorUsername || !utils.VerifyPassword(req.Password, s.cfg.OperatorPasswordHash) {
		logger.Warn("Failed login attempt")
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}

	token, err := utils.GenerateJWT(req.Username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.cfg.JWTExpiryDuration.Seconds()),
	}, nil
}
