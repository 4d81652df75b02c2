package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + error.code/text для конверта.
// Текст для ErrInternal включает исходную причину.
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrInvalidFileFormat):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeInvalidFileFormat, "invalid file format")
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeBadParams, "bad params")
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, domain.Fail(domain.ErrCodeUnauth, "unauthorized")
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, domain.Fail(domain.ErrCodeFileNotFound, "file not found")
	case errors.Is(err, domain.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, domain.Fail(domain.ErrCodeTooLarge, "file too large")
	case errors.Is(err, domain.ErrInternal):
		return http.StatusInternalServerError,
			domain.Fail(domain.ErrCodeInternal, "an unexpected error occurred - "+causeText(err))
	default:
		// Таймауты/отмены и всё неклассифицированное — 500
		return http.StatusInternalServerError, domain.Fail(domain.ErrCodeUnexpected, "unexpected")
	}
}

// causeText отрезает префикс-сентинель, оставляя исходную причину
func causeText(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInternal.Error()+": ")
}

// WriteJSON пишет произвольный JSON-ответ (успешные пути)
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOKData(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkData(data))
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
