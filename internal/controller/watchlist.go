package controller

import (
	"context"
	"sort"
	"sync"

	"divtracker/internal/dto"
	"divtracker/internal/model"
	"divtracker/internal/service"
	"divtracker/pkg/logger"
)

// missingMarginSentinel stands in for an absent margin of safety in
// descending sorts, pushing those items to the bottom of the list.
const missingMarginSentinel = -999

// WatchlistController adapts the sync service into UI-ready state. It runs
// three independent state machines (list, detail, operation) plus an
// in-memory sort that re-orders the held items without any I/O. The list
// state follows the local store through a subscription; Start and Stop
// bound that subscription's lifecycle.
type WatchlistController struct {
	log  *logger.Logger
	sync service.WatchlistSyncService

	mu           sync.RWMutex
	listState    ListState
	detailState  DetailState
	opState      OperationState
	isRefreshing bool
	sortOption   dto.SortOption

	stopOnce    sync.Once
	unsubscribe func()
	done        chan struct{}
}

func NewWatchlistController(log *logger.Logger, syncService service.WatchlistSyncService) *WatchlistController {
	return &WatchlistController{
		log:         log,
		sync:        syncService,
		listState:   idleList(),
		detailState: idleDetail(),
		opState:     idleOperation(),
		sortOption:  dto.SortMarginDesc,
		done:        make(chan struct{}),
	}
}

// Start subscribes to the local store. Every committed write produces a
// Success list state, even while a remote refresh is still in flight.
func (c *WatchlistController) Start(ctx context.Context) {
	snapshots, unsubscribe := c.sync.Subscribe()
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	go func() {
		for {
			select {
			case items, ok := <-snapshots:
				if !ok {
					return
				}
				c.applySnapshot(items)
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}()

	// Seed from whatever the mirror already holds so a cold start with
	// cached data renders immediately.
	if items, err := c.sync.Items(ctx); err == nil && len(items) > 0 {
		c.applySnapshot(items)
	}
}

func (c *WatchlistController) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		unsubscribe := c.unsubscribe
		c.mu.Unlock()
		if unsubscribe != nil {
			unsubscribe()
		}
	})
}

func (c *WatchlistController) applySnapshot(items []model.WatchlistItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	responses := sortItems(model.ToResponses(items), c.sortOption)
	c.listState = ListState{Kind: StateSuccess, Page: localPage(responses)}
}

// localPage wraps the mirror snapshot in page metadata so list consumers
// see the same shape a remote page has.
func localPage(items []dto.WatchlistItemResponse) *dto.WatchlistPage {
	return &dto.WatchlistPage{
		Content:          items,
		TotalElements:    int64(len(items)),
		TotalPages:       1,
		Size:             len(items),
		Number:           0,
		NumberOfElements: len(items),
		First:            true,
		Last:             true,
		Empty:            len(items) == 0,
	}
}

// LoadWatchlist triggers a remote refresh. Loading is only shown when no
// data has been rendered yet, to avoid flicker on pull-to-refresh; a failed
// refresh with cached data on screen is swallowed.
func (c *WatchlistController) LoadWatchlist(ctx context.Context, param dto.ListWatchlistParam) {
	c.mu.Lock()
	if c.listState.Kind == StateIdle {
		c.listState = ListState{Kind: StateLoading}
	}
	c.isRefreshing = true
	c.mu.Unlock()

	err := c.sync.Refresh(ctx, param)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.isRefreshing = false
	if err != nil && c.listState.Kind != StateSuccess {
		c.listState = ListState{Kind: StateError, Err: err.Error()}
	}
}

// SortInMemory re-orders the currently held items; no network or store
// access.
func (c *WatchlistController) SortInMemory(option dto.SortOption) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sortOption = option
	if c.listState.Kind != StateSuccess || c.listState.Page == nil {
		return
	}

	sorted := sortItems(c.listState.Page.Content, option)
	page := *c.listState.Page
	page.Content = sorted
	c.listState = ListState{Kind: StateSuccess, Page: &page}
}

func (c *WatchlistController) LoadItemDetail(ctx context.Context, id string) {
	c.mu.Lock()
	c.detailState = DetailState{Kind: StateLoading}
	c.mu.Unlock()

	item, err := c.sync.GetByID(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.detailState = DetailState{Kind: StateError, Err: err.Error()}
		return
	}
	c.detailState = DetailState{Kind: StateSuccess, Item: item}
}

func (c *WatchlistController) CreateItem(ctx context.Context, req dto.WatchlistItemRequest) {
	c.mu.Lock()
	c.opState = OperationState{Kind: StateLoading}
	c.mu.Unlock()

	item, err := c.sync.Create(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.opState = OperationState{Kind: StateError, Err: err.Error()}
		return
	}
	c.opState = OperationState{Kind: StateCreated, Item: item}
}

func (c *WatchlistController) UpdateItem(ctx context.Context, id string, req dto.WatchlistItemRequest) {
	c.mu.Lock()
	c.opState = OperationState{Kind: StateLoading}
	c.mu.Unlock()

	item, err := c.sync.Update(ctx, id, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.opState = OperationState{Kind: StateError, Err: err.Error()}
		return
	}
	c.opState = OperationState{Kind: StateUpdated, Item: item}
}

func (c *WatchlistController) DeleteItem(ctx context.Context, id string) {
	c.mu.Lock()
	c.opState = OperationState{Kind: StateLoading}
	c.mu.Unlock()

	err := c.sync.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.opState = OperationState{Kind: StateError, Err: err.Error()}
		return
	}
	c.opState = OperationState{Kind: StateDeleted}
}

func (c *WatchlistController) ListState() ListState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listState
}

func (c *WatchlistController) DetailState() DetailState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detailState
}

func (c *WatchlistController) OperationState() OperationState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opState
}

func (c *WatchlistController) IsRefreshing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isRefreshing
}

func (c *WatchlistController) ResetListState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listState = idleList()
}

func (c *WatchlistController) ResetDetailState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailState = idleDetail()
}

func (c *WatchlistController) ResetOperationState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opState = idleOperation()
}

func sortItems(items []dto.WatchlistItemResponse, option dto.SortOption) []dto.WatchlistItemResponse {
	sorted := make([]dto.WatchlistItemResponse, len(items))
	copy(sorted, items)

	switch option {
	case dto.SortMarginDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return marginOrSentinel(sorted[i]) > marginOrSentinel(sorted[j])
		})
	case dto.SortYieldDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return yieldOrZero(sorted[i]) > yieldOrZero(sorted[j])
		})
	case dto.SortTickerAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Ticker < sorted[j].Ticker
		})
	case dto.SortCreatedDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt > sorted[j].CreatedAt
		})
	}

	return sorted
}

func marginOrSentinel(item dto.WatchlistItemResponse) float64 {
	if item.MarginOfSafety == nil {
		return missingMarginSentinel
	}
	return *item.MarginOfSafety
}

func yieldOrZero(item dto.WatchlistItemResponse) float64 {
	if item.FcfYield == nil {
		return 0
	}
	return *item.FcfYield
}
