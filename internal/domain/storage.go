package domain

import (
	"context"
	"io"
	"time"
)

// Хранилище бинарного контента (S3/MinIO).
// Ключи плоские: "<fileId>.<ext>", без префиксов директорий.
type BlobStorage interface {
	// Загрузка объекта известного размера.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Временная ссылка на чтение; contentType подставляется
	// в response-content-type выдаваемого URL.
	PresignGet(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
