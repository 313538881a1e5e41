package http

import (
	"net/http"

	"divtracker/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAuth(base *echo.Group) {
	auth := base.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/signup", h.Signup)
		auth.POST("/logout", h.Logout)
	}
}

func (h *HttpAPIHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	auth, err := h.service.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("logged in", auth))
}

func (h *HttpAPIHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	auth, err := h.service.AuthService.Signup(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("signed up", auth))
}

func (h *HttpAPIHandler) Logout(c echo.Context) error {
	if err := h.service.AuthService.Logout(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("logged out", nil))
}
