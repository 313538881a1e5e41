package service

import (
	"context"
	"fmt"

	"divtracker/config"
	"divtracker/internal/dto"
	"divtracker/internal/model"
	"divtracker/internal/repository"
	"divtracker/pkg/logger"
	"divtracker/pkg/utils"

	"github.com/google/uuid"
)

// DeviceService owns the push-registration lifecycle: a stable locally
// generated device id plus the current push token, both persisted in the
// preference store.
type DeviceService interface {
	RegisterToken(ctx context.Context, token string) (*dto.DeviceResponse, error)
	RegisterPendingToken(ctx context.Context) error
	SavePendingToken(ctx context.Context, token string) error
	UnregisterCurrentDevice(ctx context.Context) error
	ClearLocalData(ctx context.Context) error
}

type deviceService struct {
	cfg        *config.Config
	log        *logger.Logger
	deviceRepo repository.DeviceAPIRepository
	prefRepo   repository.PreferenceRepository
}

func NewDeviceService(
	cfg *config.Config,
	log *logger.Logger,
	deviceRepo repository.DeviceAPIRepository,
	prefRepo repository.PreferenceRepository,
) DeviceService {
	return &deviceService{
		cfg:        cfg,
		log:        log,
		deviceRepo: deviceRepo,
		prefRepo:   prefRepo,
	}
}

func (s *deviceService) RegisterToken(ctx context.Context, token string) (*dto.DeviceResponse, error) {
	deviceID, err := s.getOrCreateDeviceID(ctx)
	if err != nil {
		return nil, err
	}

	req := dto.DeviceRegistrationRequest{
		PushToken: token,
		DeviceID:  deviceID,
		Platform:  s.cfg.Device.Platform,
	}
	if s.cfg.Device.Name != "" {
		req.DeviceName = utils.StringPtr(s.cfg.Device.Name)
	}

	device, err := s.deviceRepo.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	// Persist the token only once the backend accepted it, so a pending
	// token survives until registration succeeds.
	if err := s.prefRepo.Set(ctx, model.PrefKeyPushToken, token); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Push token registered", logger.StringField("device_id", deviceID))
	return device, nil
}

// RegisterPendingToken sends a token stored while the user was logged out.
// A missing pending token is not an error.
func (s *deviceService) RegisterPendingToken(ctx context.Context) error {
	token, found, err := s.prefRepo.Get(ctx, model.PrefKeyPushToken)
	if err != nil || !found {
		return err
	}
	_, err = s.RegisterToken(ctx, token)
	return err
}

func (s *deviceService) SavePendingToken(ctx context.Context, token string) error {
	return s.prefRepo.Set(ctx, model.PrefKeyPushToken, token)
}

func (s *deviceService) UnregisterCurrentDevice(ctx context.Context) error {
	deviceID, found, err := s.prefRepo.Get(ctx, model.PrefKeyDeviceID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no device registered")
	}

	if err := s.deviceRepo.Unregister(ctx, deviceID); err != nil {
		return err
	}
	return s.prefRepo.Delete(ctx, model.PrefKeyPushToken)
}

// ClearLocalData drops the push token on logout. The device id survives so
// the same installation keeps its identity across sessions.
func (s *deviceService) ClearLocalData(ctx context.Context) error {
	return s.prefRepo.Delete(ctx, model.PrefKeyPushToken)
}

func (s *deviceService) getOrCreateDeviceID(ctx context.Context) (string, error) {
	deviceID, found, err := s.prefRepo.Get(ctx, model.PrefKeyDeviceID)
	if err != nil {
		return "", err
	}
	if found {
		return deviceID, nil
	}

	deviceID = uuid.NewString()
	if err := s.prefRepo.Set(ctx, model.PrefKeyDeviceID, deviceID); err != nil {
		return "", err
	}
	return deviceID, nil
}
