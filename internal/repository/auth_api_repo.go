package repository

import (
	"context"
	"fmt"

	"divtracker/internal/dto"
	"divtracker/pkg/httpclient"
	"divtracker/pkg/logger"
)

type AuthAPIRepository interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
}

type authAPIRepository struct {
	httpClient httpclient.HTTPClient
	log        *logger.Logger
}

func NewAuthAPIRepository(log *logger.Logger, client httpclient.HTTPClient) AuthAPIRepository {
	return &authAPIRepository{
		httpClient: client,
		log:        log,
	}
}

func (r *authAPIRepository) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	resp, err := r.httpClient.Post(ctx, "/api/auth/login", req, nil, &auth)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return &auth, nil
}

func (r *authAPIRepository) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	resp, err := r.httpClient.Post(ctx, "/api/auth/signup", req, nil, &auth)
	if err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return &auth, nil
}
