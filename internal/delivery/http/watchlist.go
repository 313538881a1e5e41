package http

import (
	"net/http"

	"divtracker/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupWatchlist(base *echo.Group) {
	v1 := base.Group("/v1/watchlist")
	{
		v1.GET("/state", h.GetListState)
		v1.POST("/refresh", h.RefreshWatchlist)
		v1.POST("/sort", h.SortWatchlist)
		v1.POST("", h.CreateWatchlistItem)
		v1.GET("/:id", h.GetWatchlistItem)
		v1.PATCH("/:id", h.UpdateWatchlistItem)
		v1.DELETE("/:id", h.DeleteWatchlistItem)
		v1.GET("/operation", h.GetOperationState)
		v1.POST("/operation/reset", h.ResetOperationState)
	}
}

// GetListState returns the current list state machine snapshot together
// with the refresh-in-flight flag.
func (h *HttpAPIHandler) GetListState(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("watchlist state", map[string]interface{}{
		"list":         h.watchlist.ListState(),
		"isRefreshing": h.watchlist.IsRefreshing(),
	}))
}

func (h *HttpAPIHandler) RefreshWatchlist(c echo.Context) error {
	param := dto.DefaultListParam()
	if err := c.Bind(&param); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(param); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	h.watchlist.LoadWatchlist(c.Request().Context(), param)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("refresh finished", h.watchlist.ListState()))
}

func (h *HttpAPIHandler) SortWatchlist(c echo.Context) error {
	var body struct {
		Option dto.SortOption `json:"option" validate:"required,oneof=MARGIN_DESC YIELD_DESC TICKER_ASC CREATED_DESC"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(body); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	h.watchlist.SortInMemory(body.Option)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("sorted", h.watchlist.ListState()))
}

func (h *HttpAPIHandler) CreateWatchlistItem(c echo.Context) error {
	var req dto.WatchlistItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if req.Ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("ticker is required"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	h.watchlist.CreateItem(c.Request().Context(), req)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("create finished", h.watchlist.OperationState()))
}

func (h *HttpAPIHandler) GetWatchlistItem(c echo.Context) error {
	h.watchlist.LoadItemDetail(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("detail", h.watchlist.DetailState()))
}

func (h *HttpAPIHandler) UpdateWatchlistItem(c echo.Context) error {
	var req dto.WatchlistItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	h.watchlist.UpdateItem(c.Request().Context(), c.Param("id"), req)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("update finished", h.watchlist.OperationState()))
}

func (h *HttpAPIHandler) DeleteWatchlistItem(c echo.Context) error {
	h.watchlist.DeleteItem(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("delete finished", h.watchlist.OperationState()))
}

func (h *HttpAPIHandler) GetOperationState(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("operation state", h.watchlist.OperationState()))
}

func (h *HttpAPIHandler) ResetOperationState(c echo.Context) error {
	h.watchlist.ResetOperationState()
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("operation state reset", nil))
}
