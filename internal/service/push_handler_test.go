package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"divtracker/internal/dto"
	"divtracker/internal/model"
	"divtracker/internal/repository"
	"divtracker/pkg/logger"
	"divtracker/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeDeviceService struct {
	registeredTokens []string
	pendingTokens    []string
	registerErr      error
}

func (f *fakeDeviceService) RegisterToken(ctx context.Context, token string) (*dto.DeviceResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registeredTokens = append(f.registeredTokens, token)
	return &dto.DeviceResponse{DeviceID: "dev-1"}, nil
}

func (f *fakeDeviceService) RegisterPendingToken(ctx context.Context) error { return nil }

func (f *fakeDeviceService) SavePendingToken(ctx context.Context, token string) error {
	f.pendingTokens = append(f.pendingTokens, token)
	return nil
}

func (f *fakeDeviceService) UnregisterCurrentDevice(ctx context.Context) error { return nil }
func (f *fakeDeviceService) ClearLocalData(ctx context.Context) error          { return nil }

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	bodies []string
}

func (n *recordingNotifier) Notify(ctx context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
	return nil
}

type pushFixture struct {
	handler  PushHandler
	store    repository.WatchlistStoreRepository
	eventLog repository.PushEventLogRepository
	device   *fakeDeviceService
	notifier *recordingNotifier
}

func newPushFixture(t *testing.T) *pushFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WatchlistItem{}, &model.PushEventLog{}))

	f := &pushFixture{
		store:    repository.NewWatchlistStoreRepository(db, logger.NewNop()),
		eventLog: repository.NewPushEventLogRepository(db),
		device:   &fakeDeviceService{},
		notifier: &recordingNotifier{},
	}
	f.handler = NewPushHandler(logger.NewNop(), f.store, f.eventLog, f.device, f.notifier)
	return f
}

func TestPushHandler_PriceUpdate(t *testing.T) {
	ctx := context.Background()
	f := newPushFixture(t)

	exchange := "NASDAQ"
	notes := "keep"
	require.NoError(t, f.store.Upsert(ctx, model.WatchlistItem{
		ID:           "1",
		Ticker:       "AAPL",
		Exchange:     &exchange,
		Notes:        &notes,
		CurrentPrice: utils.Float64Ptr(150),
	}))

	err := f.handler.Handle(ctx, []byte(`{"type": "PRICE_UPDATE", "ticker": "aapl", "price": "155", "changePercent": "1.2"}`))
	require.NoError(t, err)

	got, err := f.store.GetByTicker(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 155.0, *got.CurrentPrice)
	assert.Equal(t, 1.2, *got.DailyChangePercent)
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, exchange, *got.Exchange)
	assert.Equal(t, notes, *got.Notes)

	// The stamp uses the same ISO-8601 shape as server-echoed rows.
	_, err = time.Parse(time.RFC3339, got.UpdatedAt)
	assert.NoError(t, err)
}

func TestPushHandler_PriceUpdateInferredType(t *testing.T) {
	ctx := context.Background()
	f := newPushFixture(t)

	require.NoError(t, f.store.Upsert(ctx, model.WatchlistItem{ID: "1", Ticker: "MSFT"}))

	// No explicit type: ticker+price present means price update.
	err := f.handler.Handle(ctx, []byte(`{"ticker": "MSFT", "price": "410.25"}`))
	require.NoError(t, err)

	got, err := f.store.GetByTicker(ctx, "MSFT")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 410.25, *got.CurrentPrice)
}

func TestPushHandler_PriceUpdateUnknownTickerDropped(t *testing.T) {
	ctx := context.Background()
	f := newPushFixture(t)

	require.NoError(t, f.store.Upsert(ctx, model.WatchlistItem{
		ID: "1", Ticker: "AAPL", CurrentPrice: utils.Float64Ptr(150),
	}))

	err := f.handler.Handle(ctx, []byte(`{"type": "PRICE_UPDATE", "ticker": "TSLA", "price": "200"}`))
	require.NoError(t, err)

	got, err := f.store.GetByTicker(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 150.0, *got.CurrentPrice)
}

func TestPushHandler_AlertNotifiesWithoutTouchingStore(t *testing.T) {
	ctx := context.Background()
	f := newPushFixture(t)

	require.NoError(t, f.store.Upsert(ctx, model.WatchlistItem{
		ID: "1", Ticker: "AAPL", CurrentPrice: utils.Float64Ptr(150),
	}))

	err := f.handler.Handle(ctx, []byte(`{"type": "MARGIN_ALERT", "title": "AAPL margin of safety", "body": "Margin of safety crossed 20%"}`))
	require.NoError(t, err)

	require.Len(t, f.notifier.titles, 1)
	assert.Equal(t, "AAPL margin of safety", f.notifier.titles[0])

	got, err := f.store.GetByTicker(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 150.0, *got.CurrentPrice)
}

func TestPushHandler_TokenRefreshForwarded(t *testing.T) {
	ctx := context.Background()
	f := newPushFixture(t)

	err := f.handler.Handle(ctx, []byte(`{"type": "TOKEN_REFRESH", "registrationToken": "tok-123"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"tok-123"}, f.device.registeredTokens)
}

func TestPushHandler_TokenRefreshFailureKeptPending(t *testing.T) {
	ctx := context.Background()
	f := newPushFixture(t)
	f.device.registerErr = assert.AnError

	err := f.handler.Handle(ctx, []byte(`{"type": "TOKEN_REFRESH", "registrationToken": "tok-456"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"tok-456"}, f.device.pendingTokens)
}

func TestPushHandler_InvalidPayloadRejected(t *testing.T) {
	f := newPushFixture(t)
	err := f.handler.Handle(context.Background(), []byte("not json"))
	require.Error(t, err)
}

func TestPushHandler_EventsJournaled(t *testing.T) {
	ctx := context.Background()
	f := newPushFixture(t)

	require.NoError(t, f.handler.Handle(ctx, []byte(`{"type": "DAILY_SUMMARY", "title": "Summary", "body": "All quiet"}`)))

	entries, err := f.eventLog.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, dto.PushTypeDailySummary, entries[0].EventType)
}
