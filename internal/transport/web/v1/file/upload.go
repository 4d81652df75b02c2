package file

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/staging"
	"github.com/Wizlit-Org/file-service/internal/transport/web/logx"
	"github.com/Wizlit-Org/file-service/internal/transport/web/mw"
	v1 "github.com/Wizlit-Org/file-service/internal/transport/web/v1"
)

// Upload — POST /v1/files?uploader=<id>, multipart-поле "file".
// Успех — 201 с дескриптором; повторная загрузка того же контента
// возвращает дескриптор первой записи, тоже 201.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := mw.RequestIDFromCtx(r.Context())

	uploader, err := strconv.ParseInt(r.URL.Query().Get("uploader"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: uploader must be an integer", domain.ErrBadParams))
		return
	}

	part, hdr, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			v1.WriteDomainError(w, r, domain.ErrTooLarge)
			return
		}
		v1.WriteDomainError(w, r, fmt.Errorf("%w: multipart field \"file\" is required", domain.ErrBadParams))
		return
	}
	defer part.Close()

	st, err := staging.Stage(h.StagingDir, part, hdr.Filename, hdr.Header.Get("Content-Type"))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			v1.WriteDomainError(w, r, domain.ErrTooLarge)
			return
		}
		logx.Error(h.Log, reqID, "upload", "staging failed", err, "filename", hdr.Filename)
		v1.WriteDomainError(w, r, err)
		return
	}
	// локальная копия живёт только на время запроса
	defer st.Remove()

	desc, err := h.Files.Ingest(r.Context(), st, uploader)
	if err != nil {
		logx.Error(h.Log, reqID, "upload", "ingest failed", err, "hash", st.Hash)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, "upload", "file ingested",
		"id", desc.FileID, "size", desc.FileSize, "uploader", uploader)
	v1.WriteJSON(w, r, http.StatusCreated, desc)
}
