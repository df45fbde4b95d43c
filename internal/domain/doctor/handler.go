package doctor

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pms/pms/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/auth/me", h.Me, guard)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tok, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
		}
		return err
	}
	return c.JSON(http.StatusOK, TokenResponse{AccessToken: tok, TokenType: "bearer"})
}

func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.DoctorFromContext(c.Request().Context()))
}
