package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/access-service/internal/utils"
)

// Pinger - хранилище, доступность которого проверяет PingHandler.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHandler отвечает на проверку доступности сервиса.
type PingHandler struct {
	DB      Pinger
	Logger  *log.Logger
	Timeout time.Duration
}

// NewPingHandler создаёт новый экземпляр PingHandler.
func NewPingHandler(db Pinger, logger *log.Logger, timeout time.Duration) *PingHandler {
	return &PingHandler{DB: db, Logger: logger, Timeout: timeout}
}

// Ping обрабатывает GET запрос к /api/ping
func (h *PingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		h.Logger.Println("database ping failed:", err)
		utils.SendErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "ok"); err != nil {
		h.Logger.Println(err)
	}
}
