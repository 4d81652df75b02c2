// Пакет file — HTTP-обработчики загрузки и просмотра файлов.
package file

import (
	"context"
	"log"
	"time"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/staging"
)

// Service — ядро файловых операций (см. internal/service).
type Service interface {
	Ingest(ctx context.Context, st *staging.StagedFile, uploader int64) (domain.FileDescriptor, error)
	RecordView(ctx context.Context, id domain.FileID) (domain.FileDescriptor, error)
}

// Presigner выдаёт временные ссылки на скачивание блоба.
type Presigner interface {
	PresignGet(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}

type Handler struct {
	Log        *log.Logger
	Files      Service
	Presign    Presigner
	StagingDir string
	PresignTTL time.Duration
}
