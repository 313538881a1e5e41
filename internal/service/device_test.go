package service

import (
	"context"
	"fmt"
	"testing"

	"divtracker/config"
	"divtracker/internal/dto"
	"divtracker/internal/model"
	"divtracker/internal/repository"
	"divtracker/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeDeviceAPI struct {
	requests      []dto.DeviceRegistrationRequest
	registerErr   error
	unregistered  []string
	unregisterErr error
}

func (f *fakeDeviceAPI) Register(ctx context.Context, req dto.DeviceRegistrationRequest) (*dto.DeviceResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.requests = append(f.requests, req)
	return &dto.DeviceResponse{DeviceID: req.DeviceID, Platform: req.Platform}, nil
}

func (f *fakeDeviceAPI) ListDevices(ctx context.Context) ([]dto.DeviceResponse, error) {
	return nil, nil
}

func (f *fakeDeviceAPI) Unregister(ctx context.Context, deviceID string) error {
	if f.unregisterErr != nil {
		return f.unregisterErr
	}
	f.unregistered = append(f.unregistered, deviceID)
	return nil
}

func newDeviceFixture(t *testing.T) (DeviceService, *fakeDeviceAPI, repository.PreferenceRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Preference{}))

	cfg := &config.Config{}
	cfg.Device.Platform = "LINUX"
	cfg.Device.Name = "workstation"

	api := &fakeDeviceAPI{}
	prefs := repository.NewPreferenceRepository(db)
	return NewDeviceService(cfg, logger.NewNop(), api, prefs), api, prefs
}

func TestDeviceService_RegisterTokenGeneratesStableDeviceID(t *testing.T) {
	ctx := context.Background()
	svc, api, _ := newDeviceFixture(t)

	_, err := svc.RegisterToken(ctx, "tok-1")
	require.NoError(t, err)
	_, err = svc.RegisterToken(ctx, "tok-2")
	require.NoError(t, err)

	require.Len(t, api.requests, 2)
	assert.NotEmpty(t, api.requests[0].DeviceID)
	assert.Equal(t, api.requests[0].DeviceID, api.requests[1].DeviceID)
	assert.Equal(t, "LINUX", api.requests[0].Platform)
	require.NotNil(t, api.requests[0].DeviceName)
	assert.Equal(t, "workstation", *api.requests[0].DeviceName)
}

func TestDeviceService_RegisterTokenPersistsTokenAfterSuccess(t *testing.T) {
	ctx := context.Background()
	svc, _, prefs := newDeviceFixture(t)

	_, err := svc.RegisterToken(ctx, "tok-1")
	require.NoError(t, err)

	token, found, err := prefs.Get(ctx, model.PrefKeyPushToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok-1", token)
}

func TestDeviceService_RegisterPendingTokenNoopWithoutToken(t *testing.T) {
	ctx := context.Background()
	svc, api, _ := newDeviceFixture(t)

	require.NoError(t, svc.RegisterPendingToken(ctx))
	assert.Empty(t, api.requests)
}

func TestDeviceService_RegisterPendingTokenSendsSavedToken(t *testing.T) {
	ctx := context.Background()
	svc, api, _ := newDeviceFixture(t)

	require.NoError(t, svc.SavePendingToken(ctx, "tok-pending"))
	require.NoError(t, svc.RegisterPendingToken(ctx))

	require.Len(t, api.requests, 1)
	assert.Equal(t, "tok-pending", api.requests[0].PushToken)
}

func TestDeviceService_ClearLocalDataKeepsDeviceID(t *testing.T) {
	ctx := context.Background()
	svc, _, prefs := newDeviceFixture(t)

	_, err := svc.RegisterToken(ctx, "tok-1")
	require.NoError(t, err)
	require.NoError(t, svc.ClearLocalData(ctx))

	_, found, err := prefs.Get(ctx, model.PrefKeyPushToken)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = prefs.Get(ctx, model.PrefKeyDeviceID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestDeviceService_UnregisterWithoutDeviceFails(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newDeviceFixture(t)

	err := svc.UnregisterCurrentDevice(ctx)
	assert.Error(t, err)
}

func TestDeviceService_RegisterFailureKeepsPendingToken(t *testing.T) {
	ctx := context.Background()
	svc, api, prefs := newDeviceFixture(t)

	require.NoError(t, svc.SavePendingToken(ctx, "tok-pending"))
	api.registerErr = fmt.Errorf("HTTP status 401")

	err := svc.RegisterPendingToken(ctx)
	assert.Error(t, err)

	token, found, reqErr := prefs.Get(ctx, model.PrefKeyPushToken)
	require.NoError(t, reqErr)
	assert.True(t, found)
	assert.Equal(t, "tok-pending", token)
}
