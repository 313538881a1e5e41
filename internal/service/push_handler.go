package service

import (
	"context"
	"encoding/json"
	"fmt"

	"divtracker/internal/dto"
	"divtracker/internal/repository"
	"divtracker/pkg/logger"
	"divtracker/pkg/notify"
	"divtracker/pkg/utils"
)

// PushHandler consumes server-sent events from the push webhook. Market-data
// updates are applied straight to the local store, bypassing the sync
// service; alert events surface a notification without touching the store.
// All handling is best effort: failures are logged and dropped, never
// surfaced to the user.
type PushHandler interface {
	Handle(ctx context.Context, payload []byte) error
}

type pushHandler struct {
	log           *logger.Logger
	store         repository.WatchlistStoreRepository
	eventLogRepo  repository.PushEventLogRepository
	deviceService DeviceService
	notifier      notify.Notifier
}

func NewPushHandler(
	log *logger.Logger,
	store repository.WatchlistStoreRepository,
	eventLogRepo repository.PushEventLogRepository,
	deviceService DeviceService,
	notifier notify.Notifier,
) PushHandler {
	return &pushHandler{
		log:           log,
		store:         store,
		eventLogRepo:  eventLogRepo,
		deviceService: deviceService,
		notifier:      notifier,
	}
}

func (h *pushHandler) Handle(ctx context.Context, payload []byte) error {
	var event dto.PushEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("invalid push payload: %w", err)
	}

	eventType := event.EventType()

	if err := h.eventLogRepo.Record(ctx, eventType, payload); err != nil {
		h.log.WarnContext(ctx, "Failed to journal push event", logger.ErrorField(err))
	}

	switch {
	case eventType == dto.PushTypePriceUpdate:
		h.handlePriceUpdate(ctx, event)
	case event.IsAlert():
		h.handleAlert(ctx, event)
	case eventType == dto.PushTypeTokenRefresh:
		h.handleTokenRefresh(ctx, event)
	default:
		h.log.DebugContext(ctx, "Ignoring push event with unknown type",
			logger.StringField("type", event.Type))
	}

	return nil
}

// handlePriceUpdate applies a silent partial update to the row matching the
// ticker case-insensitively. A ticker with no local row is dropped, not
// queued: the next full refresh will carry the fresh numbers anyway.
func (h *pushHandler) handlePriceUpdate(ctx context.Context, event dto.PushEvent) {
	price, err := utils.ParseDecimal(event.Price)
	if err != nil {
		h.log.WarnContext(ctx, "Dropping price update with unparseable price",
			logger.StringField("ticker", event.Ticker),
			logger.StringField("price", event.Price),
		)
		return
	}

	var changePercent *float64
	if event.ChangePercent != "" {
		if v, err := utils.ParseDecimal(event.ChangePercent); err == nil {
			changePercent = &v
		}
	}

	rows, err := h.store.UpdatePriceByTicker(ctx, event.Ticker, price, changePercent, utils.NowTimestamp())
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to apply price update",
			logger.StringField("ticker", event.Ticker),
			logger.ErrorField(err),
		)
		return
	}
	if rows == 0 {
		h.log.DebugContext(ctx, "Price update for untracked ticker dropped",
			logger.StringField("ticker", event.Ticker))
		return
	}

	h.log.DebugContext(ctx, "Price update applied",
		logger.StringField("ticker", event.Ticker),
		logger.Float64Field("price", price),
	)
}

func (h *pushHandler) handleAlert(ctx context.Context, event dto.PushEvent) {
	if event.Title == "" || event.Body == "" {
		h.log.DebugContext(ctx, "Alert event missing title or body, dropped",
			logger.StringField("type", event.Type))
		return
	}

	if err := h.notifier.Notify(ctx, event.Title, event.Body); err != nil {
		h.log.WarnContext(ctx, "Failed to deliver alert notification",
			logger.StringField("type", event.Type),
			logger.ErrorField(err),
		)
	}
}

func (h *pushHandler) handleTokenRefresh(ctx context.Context, event dto.PushEvent) {
	if event.RegistrationToken == "" {
		return
	}

	if _, err := h.deviceService.RegisterToken(ctx, event.RegistrationToken); err != nil {
		h.log.WarnContext(ctx, "Failed to register refreshed push token", logger.ErrorField(err))
		// Keep the token for a later retry after login.
		if err := h.deviceService.SavePendingToken(ctx, event.RegistrationToken); err != nil {
			h.log.WarnContext(ctx, "Failed to save pending push token", logger.ErrorField(err))
		}
	}
}
