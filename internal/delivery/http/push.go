package http

import (
	"io"
	"net/http"
	"strconv"

	"divtracker/internal/dto"

	"github.com/labstack/echo/v4"
)

// ReceivePushEvent is the webhook the push channel delivers to. Handling is
// best effort: only an unreadable or unparseable payload is rejected, every
// other failure is logged inside the handler and acknowledged here.
func (h *HttpAPIHandler) ReceivePushEvent(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	if err := h.service.PushHandler.Handle(c.Request().Context(), payload); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	return c.NoContent(http.StatusNoContent)
}

// RecentPushEvents lists the latest journaled push payloads, newest first.
func (h *HttpAPIHandler) RecentPushEvents(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("limit must be a positive integer"))
		}
		limit = parsed
	}

	events, err := h.service.PushEventLog.Recent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("push events", events))
}
