package repository

import (
	"context"
	"testing"
	"time"

	"divtracker/internal/model"
	"divtracker/pkg/logger"
	"divtracker/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WatchlistItem{}, &model.Preference{}, &model.PushEventLog{}))
	return db
}

func testItem(id, ticker string) model.WatchlistItem {
	return model.WatchlistItem{
		ID:        id,
		Ticker:    ticker,
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
	}
}

func TestWatchlistStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	old := []model.WatchlistItem{
		testItem("1", "AAPL"), testItem("2", "MSFT"), testItem("3", "KO"),
		testItem("4", "PG"), testItem("5", "JNJ"),
	}
	require.NoError(t, store.ReplaceAll(ctx, old))

	fresh := []model.WatchlistItem{
		testItem("10", "O"), testItem("11", "MMM"), testItem("12", "PEP"),
	}
	require.NoError(t, store.ReplaceAll(ctx, fresh))

	items, err := store.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	ids := make(map[string]bool)
	for _, item := range items {
		ids[item.ID] = true
	}
	assert.Equal(t, map[string]bool{"10": true, "11": true, "12": true}, ids)
}

func TestWatchlistStore_ReplaceAllEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	require.NoError(t, store.ReplaceAll(ctx, []model.WatchlistItem{testItem("1", "AAPL")}))
	require.NoError(t, store.ReplaceAll(ctx, nil))

	items, err := store.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWatchlistStore_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	item := testItem("1", "AAPL")
	require.NoError(t, store.Upsert(ctx, item))

	notes := "quality compounder"
	item.Notes = &notes
	require.NoError(t, store.Upsert(ctx, item))

	items, err := store.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Notes)
	assert.Equal(t, notes, *items[0].Notes)
}

func TestWatchlistStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	require.NoError(t, store.ReplaceAll(ctx, []model.WatchlistItem{
		testItem("1", "AAPL"), testItem("2", "MSFT"),
	}))

	require.NoError(t, store.DeleteByID(ctx, "1"))

	items, err := store.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestWatchlistStore_UpdatePriceByTicker(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	exchange := "NASDAQ"
	notes := "long term hold"
	item := testItem("1", "AAPL")
	item.Exchange = &exchange
	item.Notes = &notes
	item.CurrentPrice = utils.Float64Ptr(150)
	require.NoError(t, store.Upsert(ctx, item))

	// Ticker match is case-insensitive.
	rows, err := store.UpdatePriceByTicker(ctx, "aapl", 155, utils.Float64Ptr(1.2), "2024-06-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := store.GetByTicker(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 155.0, *got.CurrentPrice)
	assert.Equal(t, 1.2, *got.DailyChangePercent)
	assert.Equal(t, "2024-06-01T12:00:00Z", got.UpdatedAt)

	// Everything outside the price fields is untouched.
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, exchange, *got.Exchange)
	assert.Equal(t, notes, *got.Notes)
	assert.Equal(t, "2024-01-01T00:00:00Z", got.CreatedAt)
}

func TestWatchlistStore_UpdatePriceByTickerNoMatch(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	item := testItem("1", "AAPL")
	item.CurrentPrice = utils.Float64Ptr(150)
	require.NoError(t, store.Upsert(ctx, item))

	rows, err := store.UpdatePriceByTicker(ctx, "TSLA", 200, nil, "2024-06-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	got, err := store.GetByTicker(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 150.0, *got.CurrentPrice)
}

func TestWatchlistStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	snapshots, unsubscribe := store.Subscribe()
	defer unsubscribe()

	require.NoError(t, store.Upsert(ctx, testItem("1", "AAPL")))

	select {
	case items := <-snapshots:
		require.Len(t, items, 1)
		assert.Equal(t, "AAPL", items[0].Ticker)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published after write")
	}
}

func TestWatchlistStore_SubscribeLatestWins(t *testing.T) {
	ctx := context.Background()
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	snapshots, unsubscribe := store.Subscribe()
	defer unsubscribe()

	// Two writes without draining in between: the subscriber sees only the
	// newest snapshot.
	require.NoError(t, store.Upsert(ctx, testItem("1", "AAPL")))
	require.NoError(t, store.Upsert(ctx, testItem("2", "MSFT")))

	select {
	case items := <-snapshots:
		assert.Len(t, items, 2)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published after write")
	}
}

func TestWatchlistStore_UnsubscribeIdempotent(t *testing.T) {
	store := NewWatchlistStoreRepository(newTestDB(t), logger.NewNop())

	_, unsubscribe := store.Subscribe()
	unsubscribe()
	unsubscribe()

	// Writes after unsubscribe must not panic on the closed channel.
	require.NoError(t, store.Upsert(context.Background(), testItem("1", "AAPL")))
}
