package controller

import (
	"context"
	"strings"
	"sync"

	"divtracker/internal/dto"
	"divtracker/internal/service"
	"divtracker/pkg/cache"
	"divtracker/pkg/logger"
)

// TickerSearchController drives the ticker search screen. Results are
// cached briefly so retyping the same query does not hammer the search
// endpoint.
type TickerSearchController struct {
	log   *logger.Logger
	sync  service.WatchlistSyncService
	cache cache.Cache

	mu    sync.RWMutex
	state SearchState
}

func NewTickerSearchController(log *logger.Logger, syncService service.WatchlistSyncService, c cache.Cache) *TickerSearchController {
	return &TickerSearchController{
		log:   log,
		sync:  syncService,
		cache: c,
		state: idleSearch(),
	}
}

func (c *TickerSearchController) Search(ctx context.Context, query string) {
	c.search(ctx, "search:"+strings.ToUpper(query), query, c.sync.SearchTickers)
}

func (c *TickerSearchController) Lookup(ctx context.Context, symbol string) {
	c.search(ctx, "lookup:"+strings.ToUpper(symbol), symbol, c.sync.LookupSymbol)
}

func (c *TickerSearchController) search(ctx context.Context, cacheKey, input string, fn func(context.Context, string) ([]dto.TickerSearchResult, error)) {
	if cached, found := cache.GetFromCache[[]dto.TickerSearchResult](c.cache, cacheKey); found {
		c.setState(SearchState{Kind: StateSuccess, Results: cached})
		return
	}

	c.setState(SearchState{Kind: StateLoading})

	results, err := fn(ctx, input)
	if err != nil {
		c.setState(SearchState{Kind: StateError, Err: err.Error()})
		return
	}

	// Blank input short-circuits in the sync service; caching the empty
	// result is harmless.
	c.cache.Set(cacheKey, results, 0)
	c.setState(SearchState{Kind: StateSuccess, Results: results})
}

func (c *TickerSearchController) State() SearchState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *TickerSearchController) Reset() {
	c.setState(idleSearch())
}

func (c *TickerSearchController) setState(state SearchState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}
