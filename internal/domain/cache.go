package domain

import "context"

// Ключи кеша — единое место, чтобы не расползались по коду.
// Записи файлов иммутабельны, поэтому инвалидация не нужна — только TTL.
func CacheKeyFileMeta(id FileID) string { return "filemeta:" + id }

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Ping(context.Context) error
	Close()
}
