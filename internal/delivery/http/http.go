package http

import (
	"context"

	"divtracker/internal/controller"
	"divtracker/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// HttpAPIHandler is the local gateway consumed by UI frontends, plus the
// webhook the push channel delivers events to.
type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	watchlist *controller.WatchlistController
	tickers   *controller.TickerSearchController
}

func NewHttpAPIHandler(
	ctx context.Context,
	echo *echo.Echo,
	validator *goValidator.Validate,
	service *service.Service,
	watchlist *controller.WatchlistController,
	tickers *controller.TickerSearchController,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		watchlist: watchlist,
		tickers:   tickers,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	h.SetupAuth(base)
	h.SetupWatchlist(base)
	h.SetupTickers(base)

	// Push events arrive outside the /api surface.
	h.echo.POST("/push", h.ReceivePushEvent)
	base.GET("/v1/push/events", h.RecentPushEvents)
}
