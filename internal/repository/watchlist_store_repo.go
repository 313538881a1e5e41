package repository

import (
	"context"
	"sync"

	"divtracker/internal/model"
	"divtracker/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchlistStoreRepository is the durable local mirror of the remote
// watchlist. It holds no business logic: it is a passive cache that may be
// stale at any time. Every committed write publishes a fresh snapshot to
// subscribers, which is how the read path stays reactive.
type WatchlistStoreRepository interface {
	Items(ctx context.Context) ([]model.WatchlistItem, error)
	GetByTicker(ctx context.Context, ticker string) (*model.WatchlistItem, error)
	Upsert(ctx context.Context, item model.WatchlistItem) error
	ReplaceAll(ctx context.Context, items []model.WatchlistItem) error
	DeleteByID(ctx context.Context, id string) error
	// UpdatePriceByTicker touches only current_price, daily_change_percent
	// and updated_at on the row matching the ticker case-insensitively.
	// Returns the number of rows changed; zero means no local row matched.
	UpdatePriceByTicker(ctx context.Context, ticker string, price float64, changePercent *float64, updatedAt string) (int64, error)

	// Subscribe registers a snapshot channel. Each committed write delivers
	// the complete latest content; slow consumers only ever miss
	// intermediate snapshots, never the newest. The returned func cancels
	// the subscription and is safe to call more than once.
	Subscribe() (<-chan []model.WatchlistItem, func())
}

type watchlistStoreRepository struct {
	db  *gorm.DB
	log *logger.Logger

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]chan []model.WatchlistItem
}

func NewWatchlistStoreRepository(db *gorm.DB, log *logger.Logger) WatchlistStoreRepository {
	return &watchlistStoreRepository{
		db:          db,
		log:         log,
		subscribers: make(map[int]chan []model.WatchlistItem),
	}
}

func (r *watchlistStoreRepository) Items(ctx context.Context) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistStoreRepository) GetByTicker(ctx context.Context, ticker string) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := r.db.WithContext(ctx).Where("UPPER(ticker) = UPPER(?)", ticker).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *watchlistStoreRepository) Upsert(ctx context.Context, item model.WatchlistItem) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&item).Error
	if err != nil {
		return err
	}

	r.publish(ctx)
	return nil
}

func (r *watchlistStoreRepository) ReplaceAll(ctx context.Context, items []model.WatchlistItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.WatchlistItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return err
	}

	r.publish(ctx)
	return nil
}

func (r *watchlistStoreRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&model.WatchlistItem{}, "id = ?", id).Error; err != nil {
		return err
	}

	r.publish(ctx)
	return nil
}

func (r *watchlistStoreRepository) UpdatePriceByTicker(ctx context.Context, ticker string, price float64, changePercent *float64, updatedAt string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.WatchlistItem{}).
		Where("UPPER(ticker) = UPPER(?)", ticker).
		Updates(map[string]interface{}{
			"current_price":        price,
			"daily_change_percent": changePercent,
			"updated_at":           updatedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		r.publish(ctx)
	}
	return res.RowsAffected, nil
}

func (r *watchlistStoreRepository) Subscribe() (<-chan []model.WatchlistItem, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++

	ch := make(chan []model.WatchlistItem, 1)
	r.subscribers[id] = ch

	unsubscribe := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if sub, ok := r.subscribers[id]; ok {
			delete(r.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// publish fans the latest committed snapshot out to every subscriber.
// Writers never block: a subscriber that has not drained its previous
// snapshot gets it replaced with the newer one.
func (r *watchlistStoreRepository) publish(ctx context.Context) {
	items, err := r.Items(ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to load snapshot for publish", logger.ErrorField(err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subscribers {
		select {
		case ch <- items:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- items
		}
	}
}
