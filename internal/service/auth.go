package service

import (
	"context"

	"divtracker/internal/dto"
	"divtracker/internal/model"
	"divtracker/internal/repository"
	"divtracker/pkg/httpclient"
	"divtracker/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context) error
	// RestoreSession loads a persisted token into the API client. Returns
	// false when no session is stored.
	RestoreSession(ctx context.Context) (bool, error)
}

type authService struct {
	log           *logger.Logger
	authRepo      repository.AuthAPIRepository
	prefRepo      repository.PreferenceRepository
	deviceService DeviceService
	client        httpclient.HTTPClient
}

func NewAuthService(
	log *logger.Logger,
	authRepo repository.AuthAPIRepository,
	prefRepo repository.PreferenceRepository,
	deviceService DeviceService,
	client httpclient.HTTPClient,
) AuthService {
	return &authService{
		log:           log,
		authRepo:      authRepo,
		prefRepo:      prefRepo,
		deviceService: deviceService,
		client:        client,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	auth, err := s.authRepo.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.adoptSession(ctx, auth.Token); err != nil {
		return nil, err
	}

	// A push token saved while logged out gets registered now. Failure is
	// non-fatal; registration retries on the next token refresh.
	if err := s.deviceService.RegisterPendingToken(ctx); err != nil {
		s.log.WarnContext(ctx, "Failed to register pending push token", logger.ErrorField(err))
	}

	return auth, nil
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	auth, err := s.authRepo.Signup(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.adoptSession(ctx, auth.Token); err != nil {
		return nil, err
	}

	return auth, nil
}

func (s *authService) Logout(ctx context.Context) error {
	s.client.SetAuthToken("")
	if err := s.prefRepo.Delete(ctx, model.PrefKeyAuthToken); err != nil {
		return err
	}
	return s.deviceService.ClearLocalData(ctx)
}

func (s *authService) RestoreSession(ctx context.Context) (bool, error) {
	token, found, err := s.prefRepo.Get(ctx, model.PrefKeyAuthToken)
	if err != nil || !found {
		return false, err
	}
	s.client.SetAuthToken(token)
	return true, nil
}

func (s *authService) adoptSession(ctx context.Context, token string) error {
	s.client.SetAuthToken(token)
	return s.prefRepo.Set(ctx, model.PrefKeyAuthToken, token)
}
