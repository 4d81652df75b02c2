package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/transport/web/logx"
	"github.com/Wizlit-Org/file-service/internal/transport/web/mw"
	v1 "github.com/Wizlit-Org/file-service/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log     *log.Logger
	DB      Pinger
	Cache   Pinger
	Storage Pinger
}

// Liveness — проверка, жив ли процесс (не зависит от БД/кэша/S3)
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	const op = "health.liveness"
	reqID := mw.RequestIDFromCtx(r.Context())

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKData(w, r, "ok")
}

// Readiness — готовность сервиса: пинг Postgres, Redis и S3
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "db ping failed", err)
		h.unavailable(w, r)
		return
	}

	if err := h.Cache.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "cache ping failed", err)
		h.unavailable(w, r)
		return
	}

	if err := h.Storage.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "storage ping failed", err)
		h.unavailable(w, r)
		return
	}

	logx.Info(h.Log, reqID, op, "ready")
	v1.WriteOKData(w, r, "ready")
}

func (h *Handler) unavailable(w http.ResponseWriter, r *http.Request) {
	v1.WriteEnvelope(w, r, http.StatusServiceUnavailable,
		domain.Fail(domain.ErrCodeUnexpected, "service is not ready"))
}
