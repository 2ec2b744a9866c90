package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports process and store liveness.
type HealthHandler struct {
	// PingStore checks the database connection pool.
	PingStore func() error
}

func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{PingStore: ping}
}

func (h *HealthHandler) Health(c echo.Context) error {
	dbStatus := "up"
	status := http.StatusOK
	if err := h.PingStore(); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{
		"status":   "healthy",
		"service":  "estate-api",
		"database": dbStatus,
	})
}
