package repository

import (
	"context"
	"fmt"

	"divtracker/internal/dto"
	"divtracker/pkg/httpclient"
	"divtracker/pkg/logger"
)

type DeviceAPIRepository interface {
	Register(ctx context.Context, req dto.DeviceRegistrationRequest) (*dto.DeviceResponse, error)
	ListDevices(ctx context.Context) ([]dto.DeviceResponse, error)
	Unregister(ctx context.Context, deviceID string) error
}

type deviceAPIRepository struct {
	httpClient httpclient.HTTPClient
	log        *logger.Logger
}

func NewDeviceAPIRepository(log *logger.Logger, client httpclient.HTTPClient) DeviceAPIRepository {
	return &deviceAPIRepository{
		httpClient: client,
		log:        log,
	}
}

func (r *deviceAPIRepository) Register(ctx context.Context, req dto.DeviceRegistrationRequest) (*dto.DeviceResponse, error) {
	var device dto.DeviceResponse
	resp, err := r.httpClient.Post(ctx, "/api/v1/devices/register", req, nil, &device)
	if err != nil {
		return nil, fmt.Errorf("device registration failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return &device, nil
}

func (r *deviceAPIRepository) ListDevices(ctx context.Context) ([]dto.DeviceResponse, error) {
	var devices []dto.DeviceResponse
	resp, err := r.httpClient.Get(ctx, "/api/v1/devices", nil, nil, &devices)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return devices, nil
}

func (r *deviceAPIRepository) Unregister(ctx context.Context, deviceID string) error {
	resp, err := r.httpClient.Delete(ctx, "/api/v1/devices/"+deviceID, nil, nil)
	if err != nil {
		return fmt.Errorf("device unregistration failed: %w", err)
	}
	if !resp.IsSuccess() {
		return apiError(resp)
	}

	return nil
}
