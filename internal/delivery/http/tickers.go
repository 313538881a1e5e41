package http

import (
	"net/http"

	"divtracker/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTickers(base *echo.Group) {
	v1 := base.Group("/v1/tickers")
	{
		v1.GET("/search", h.SearchTickers)
		v1.GET("/lookup", h.LookupSymbol)
	}
}

func (h *HttpAPIHandler) SearchTickers(c echo.Context) error {
	h.tickers.Search(c.Request().Context(), c.QueryParam("q"))
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("search finished", h.tickers.State()))
}

func (h *HttpAPIHandler) LookupSymbol(c echo.Context) error {
	h.tickers.Lookup(c.Request().Context(), c.QueryParam("symbol"))
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("lookup finished", h.tickers.State()))
}
