package file

import (
	"fmt"
	"net/http"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/transport/web/logx"
	"github.com/Wizlit-Org/file-service/internal/transport/web/mw"
	v1 "github.com/Wizlit-Org/file-service/internal/transport/web/v1"
)

// View — GET /v1/files/{fileId}: фиксирует просмотр и отдаёт 302 на
// временную presigned-ссылку. Клиент скачивает блоб напрямую из S3,
// сервис трафик не проксирует.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	reqID := mw.RequestIDFromCtx(r.Context())

	id := r.PathValue("fileId")
	if id == "" {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: fileId is required", domain.ErrBadParams))
		return
	}

	desc, err := h.Files.RecordView(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, "view", "record view failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	link, err := h.Presign.PresignGet(r.Context(), desc.FullName, desc.FileType, h.PresignTTL)
	if err != nil {
		logx.Error(h.Log, reqID, "view", "presign failed", err, "key", desc.FullName)
		v1.WriteDomainError(w, r, domain.Internal(err))
		return
	}

	logx.Info(h.Log, reqID, "view", "redirecting to blob", "id", id)
	w.Header().Set("X-Request-ID", reqID)
	http.Redirect(w, r, link, http.StatusFound)
}
