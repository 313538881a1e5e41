package service

import (
	"context"
	"strings"

	"divtracker/internal/dto"
	"divtracker/internal/model"
	"divtracker/internal/repository"
	"divtracker/pkg/logger"
)

// WatchlistSyncService reconciles the local mirror with the remote
// authority. The local store is what the UI reads; the remote API is the
// sole owner of identifiers and computed fields. Writes go remote first and
// echo into the store only on success.
type WatchlistSyncService interface {
	// Subscribe exposes the store's reactive read path.
	Subscribe() (<-chan []model.WatchlistItem, func())
	Items(ctx context.Context) ([]model.WatchlistItem, error)

	Refresh(ctx context.Context, param dto.ListWatchlistParam) error
	Create(ctx context.Context, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error)
	Update(ctx context.Context, id string, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*dto.WatchlistItemResponse, error)
	SearchTickers(ctx context.Context, query string) ([]dto.TickerSearchResult, error)
	LookupSymbol(ctx context.Context, symbol string) ([]dto.TickerSearchResult, error)
}

type watchlistSyncService struct {
	log     *logger.Logger
	apiRepo repository.WatchlistAPIRepository
	store   repository.WatchlistStoreRepository
}

func NewWatchlistSyncService(
	log *logger.Logger,
	apiRepo repository.WatchlistAPIRepository,
	store repository.WatchlistStoreRepository,
) WatchlistSyncService {
	return &watchlistSyncService{
		log:     log,
		apiRepo: apiRepo,
		store:   store,
	}
}

func (s *watchlistSyncService) Subscribe() (<-chan []model.WatchlistItem, func()) {
	return s.store.Subscribe()
}

func (s *watchlistSyncService) Items(ctx context.Context) ([]model.WatchlistItem, error) {
	return s.store.Items(ctx)
}

// Refresh fetches one page from the remote API and, on success, replaces
// the entire mirror content with it. The app only ever requests a single
// page, so items outside that page are discarded on purpose; the store
// always equals the last successfully fetched page. A failed fetch leaves
// the mirror untouched.
func (s *watchlistSyncService) Refresh(ctx context.Context, param dto.ListWatchlistParam) error {
	page, err := s.apiRepo.List(ctx, param)
	if err != nil {
		return err
	}

	if err := s.store.ReplaceAll(ctx, model.FromResponses(page.Content)); err != nil {
		return err
	}

	s.log.DebugContext(ctx, "Watchlist refreshed",
		logger.IntField("items", len(page.Content)),
		logger.IntField("page", param.Page),
	)
	return nil
}

func (s *watchlistSyncService) Create(ctx context.Context, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error) {
	item, err := s.apiRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	// Optimistic echo: the server-assigned row is visible locally without
	// waiting for the next refresh.
	if err := s.store.Upsert(ctx, model.FromResponse(*item)); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *watchlistSyncService) Update(ctx context.Context, id string, req dto.WatchlistItemRequest) (*dto.WatchlistItemResponse, error) {
	item, err := s.apiRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.Upsert(ctx, model.FromResponse(*item)); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the remote record first; the local row goes only after the
// remote call succeeds, so a failed delete leaves local state intact.
func (s *watchlistSyncService) Delete(ctx context.Context, id string) error {
	if err := s.apiRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteByID(ctx, id)
}

// GetByID is a one-shot remote fetch used by the detail view. It does not
// touch the mirror.
func (s *watchlistSyncService) GetByID(ctx context.Context, id string) (*dto.WatchlistItemResponse, error) {
	return s.apiRepo.GetByID(ctx, id)
}

func (s *watchlistSyncService) SearchTickers(ctx context.Context, query string) ([]dto.TickerSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []dto.TickerSearchResult{}, nil
	}
	return s.apiRepo.SearchTickers(ctx, query)
}

func (s *watchlistSyncService) LookupSymbol(ctx context.Context, symbol string) ([]dto.TickerSearchResult, error) {
	if strings.TrimSpace(symbol) == "" {
		return []dto.TickerSearchResult{}, nil
	}
	return s.apiRepo.LookupSymbol(ctx, symbol)
}
