package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   pinger
	version string
	logger  *zap.Logger
}

func NewHealthHandler(store pinger, version string, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{store: store, version: version, logger: logger}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Live всегда 200
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Version: h.version, Timestamp: time.Now()})
}

// Ready проверяет хранилище сессий: 503, если оно недоступно
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("session store is not ready",
			zap.Error(err),
			zap.String("request_id", RequestIDFromCtx(r.Context())),
		)
		h.writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "down", Version: h.version, Timestamp: time.Now()})
		return
	}
	h.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Version: h.version, Timestamp: time.Now()})
}

// статус уже отправлен, поэтому ошибку записи тела (обычно клиент отключился) только логируем
func (h *HealthHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write health response",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromCtx(r.Context())),
		)
	}
}
