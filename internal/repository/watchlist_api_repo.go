package repository

import (
	"context"
	"fmt"
	"time"

	"divtracker/config"
	"divtracker/internal/dto"
	"divtracker/pkg/httpclient"
	"divtracker/pkg/logger"

	"golang.org/x/time/rate"
)

// WatchlistAPIRepository is the remote authority for watchlist items and
// ticker search. It owns server-assigned ids and every computed field.
type WatchlistAPIRepository interface {
	List(ctx context.Context, param dto.ListWatchlistParam) (*dto.WatchlistPage, error)
	GetByID(ctx context.Context, id string) (*dto.WatchlistItemResponse, error)
	Create(ctx context.Context, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error)
	Update(ctx context.Context, id string, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error)
	Delete(ctx context.Context, id string) error
	SearchTickers(ctx context.Context, query string) ([]dto.TickerSearchResult, error)
	LookupSymbol(ctx context.Context, symbol string) ([]dto.TickerSearchResult, error)
}

type watchlistAPIRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

func NewWatchlistAPIRepository(cfg *config.Config, log *logger.Logger, client httpclient.HTTPClient) WatchlistAPIRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.API.MaxRequestPerMin)
	return &watchlistAPIRepository{
		httpClient:     client,
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), cfg.API.MaxRequestPerMin),
	}
}

func (r *watchlistAPIRepository) List(ctx context.Context, param dto.ListWatchlistParam) (*dto.WatchlistPage, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	queryParams := map[string]string{
		"page":      fmt.Sprintf("%d", param.Page),
		"size":      fmt.Sprintf("%d", param.Size),
		"sortBy":    param.SortBy,
		"direction": param.Direction,
	}

	var page dto.WatchlistPage
	resp, err := r.httpClient.Get(ctx, "/api/v1/watchlist", queryParams, nil, &page)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return &page, nil
}

func (r *watchlistAPIRepository) GetByID(ctx context.Context, id string) (*dto.WatchlistItemResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var item dto.WatchlistItemResponse
	resp, err := r.httpClient.Get(ctx, "/api/v1/watchlist/"+id, nil, nil, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist item: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return &item, nil
}

func (r *watchlistAPIRepository) Create(ctx context.Context, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var item dto.WatchlistItemResponse
	resp, err := r.httpClient.Post(ctx, "/api/v1/watchlist", req, nil, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to create watchlist item: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return &item, nil
}

func (r *watchlistAPIRepository) Update(ctx context.Context, id string, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var item dto.WatchlistItemResponse
	resp, err := r.httpClient.Patch(ctx, "/api/v1/watchlist/"+id, req, nil, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to update watchlist item: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return &item, nil
}

func (r *watchlistAPIRepository) Delete(ctx context.Context, id string) error {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := r.httpClient.Delete(ctx, "/api/v1/watchlist/"+id, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}
	if !resp.IsSuccess() {
		return apiError(resp)
	}

	return nil
}

func (r *watchlistAPIRepository) SearchTickers(ctx context.Context, query string) ([]dto.TickerSearchResult, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var results []dto.TickerSearchResult
	resp, err := r.httpClient.Get(ctx, "/api/v1/tickers/search", map[string]string{"q": query}, nil, &results)
	if err != nil {
		return nil, fmt.Errorf("failed to search tickers: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return results, nil
}

func (r *watchlistAPIRepository) LookupSymbol(ctx context.Context, symbol string) ([]dto.TickerSearchResult, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var results []dto.TickerSearchResult
	resp, err := r.httpClient.Get(ctx, "/api/v1/tickers/lookup", map[string]string{"symbol": symbol}, nil, &results)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup symbol: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	return results, nil
}
