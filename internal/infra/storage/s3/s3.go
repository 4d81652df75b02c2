package s3

import (
	"context"
	"errors"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrBucketMissing = errors.New("bucket does not exist")

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

func New(cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

// Put загружает объект известного размера под плоским ключом "<fileId>.<ext>".
// Объекты иммутабельны: повторной записи по существующему ключу не бывает,
// дедупликация отсекает её раньше.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	start := time.Now()
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Printf("PUT %q failed after %s: %v", key, time.Since(start), err)
		return err
	}
	s.logger.Printf("PUT %q ok in %s (%d bytes)", key, time.Since(start), info.Size)
	return nil
}

// PresignGet выдаёт временную ссылку на чтение объекта. Заявленный MIME
// подставляется в response-content-type, чтобы браузер получил его даже
// если объект сохранён без content-type.
func (s *Storage) PresignGet(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	params := url.Values{}
	if contentType != "" {
		params.Set("response-content-type", contentType)
	}
	u, err := s.cl.PresignedGetObject(ctx, s.bucket, key, ttl, params)
	if err != nil {
		s.logger.Printf("PRESIGN %q failed: %v", key, err)
		return "", err
	}
	s.logger.Printf("PRESIGN %q ok (ttl=%s)", key, ttl)
	return u.String(), nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Printf("DELETE %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("DELETE %q ok", key)
	return nil
}

// Ping проверяет доступность бакета (для readiness-пробы).
func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Printf("PING failed: %v", err)
		return err
	}
	if !ok {
		s.logger.Printf("PING: bucket %q does not exist", s.bucket)
		return ErrBucketMissing
	}
	return nil
}
