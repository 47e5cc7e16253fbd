package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PingHandler reports liveness and store connectivity.
type PingHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPingHandler is the constructor for PingHandler.
func NewPingHandler(db *gorm.DB, logger *slog.Logger) *PingHandler {
	return &PingHandler{
		db:     db,
		logger: logger,
	}
}

// Ping handles GET /ping: a liveness probe that also reports whether the
// credential store is reachable right now.
func (h *PingHandler) Ping(c echo.Context) error {
	status := "connected"

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		h.logger.Warn("Store ping failed", "error", err)
		status = "disconnected"
	}

	return c.JSON(http.StatusOK, map[string]string{"status": status})
}
