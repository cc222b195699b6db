package services

import (
	"context"

	"github.com/SscSPs/budget_approval_app/internal/dto"
)

// AuthSvcFacade authenticates the operator and issues access tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
