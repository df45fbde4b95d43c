package patient

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the patient CRUD surface. Every route sits behind the
// guard: all authenticated doctors share access to all records.
func (h *Handler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/patients", guard)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func patientID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// A non-numeric id can never match a record.
		return 0, echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p.Render())
}

func (h *Handler) List(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]Response, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.Render())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}

	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, p.Render())
}

func (h *Handler) Update(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, p.Render())
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Patient deleted successfully"})
}
