package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/defo-server/internal/api/http/response"
	"github.com/dtroode/defo-server/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves liveness and readiness endpoints.
type Health struct {
	db     Pinger
	logger *logger.Logger
}

func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

func (h *Health) Root(w http.ResponseWriter, _ *http.Request) {
	response.Message(w, "DeFo API is running!")
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("HTTP: health check failed", "error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
