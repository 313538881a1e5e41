package controller

import (
	"context"
	"fmt"
	"testing"
	"time"

	"divtracker/internal/dto"
	"divtracker/pkg/cache"
	"divtracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTickerController(sync *fakeSyncService) *TickerSearchController {
	return NewTickerSearchController(logger.NewNop(), sync, cache.NewCache(time.Minute, time.Minute))
}

func TestTickerSearchController_Search(t *testing.T) {
	ctx := context.Background()
	sync := newFakeSyncService()
	sync.searchResults = []dto.TickerSearchResult{{Symbol: "AAPL", Description: "Apple Inc"}}
	c := newTickerController(sync)

	c.Search(ctx, "apple")

	state := c.State()
	require.Equal(t, StateSuccess, state.Kind)
	require.Len(t, state.Results, 1)
	assert.Equal(t, "AAPL", state.Results[0].Symbol)
}

func TestTickerSearchController_RepeatQueryHitsCache(t *testing.T) {
	ctx := context.Background()
	sync := newFakeSyncService()
	sync.searchResults = []dto.TickerSearchResult{{Symbol: "KO"}}
	c := newTickerController(sync)

	c.Search(ctx, "coca")
	// Cache keys are case-insensitive, so retyping in a different case
	// still avoids a second round trip.
	c.Search(ctx, "COCA")

	assert.Equal(t, 1, sync.searchCalls)
	assert.Equal(t, StateSuccess, c.State().Kind)
}

func TestTickerSearchController_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	sync := newFakeSyncService()
	sync.searchErr = fmt.Errorf("HTTP status 503")
	c := newTickerController(sync)

	c.Search(ctx, "apple")
	state := c.State()
	assert.Equal(t, StateError, state.Kind)
	assert.Equal(t, "HTTP status 503", state.Err)

	sync.searchErr = nil
	sync.searchResults = []dto.TickerSearchResult{{Symbol: "AAPL"}}
	c.Search(ctx, "apple")
	assert.Equal(t, StateSuccess, c.State().Kind)
	assert.Equal(t, 2, sync.searchCalls)
}

func TestTickerSearchController_Reset(t *testing.T) {
	ctx := context.Background()
	sync := newFakeSyncService()
	c := newTickerController(sync)

	c.Search(ctx, "apple")
	c.Reset()
	assert.Equal(t, StateIdle, c.State().Kind)
}
