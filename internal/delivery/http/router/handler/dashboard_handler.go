package handler

import (
	"log/slog"
	"net/http"

	"crmdash/internal/delivery/http/response"
	"crmdash/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DashboardHandler holds dependencies for the aggregate view handlers.
type DashboardHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.SessionUsecase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetDashboard runs a refresh cycle and returns the assembled snapshot.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	snapshot, err := h.uc.Refresh(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Dashboard refreshed")
}

// GetMonthlyVolume returns the per-month opportunity grouping.
func (h *DashboardHandler) GetMonthlyVolume(c echo.Context) error {
	result, err := h.uc.MonthlyVolume(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Monthly volume retrieved")
}
