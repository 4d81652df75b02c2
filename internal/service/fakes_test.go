package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Wizlit-Org/file-service/internal/domain"
)

// --- In-memory фейки под движки ---

type fakeFilesRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.FileRecord
	nextID  int
	inserts int
	deletes []string
	// подмена поведения CreateFile (например, конфликт уникальности)
	createErr error
}

func newFakeFilesRepo() *fakeFilesRepo {
	return &fakeFilesRepo{byID: map[string]domain.FileRecord{}}
}

func (r *fakeFilesRepo) Close()                           {}
func (r *fakeFilesRepo) Ping(context.Context) error       { return nil }
func (r *fakeFilesRepo) FileByHash(_ context.Context, hash string) (domain.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.byID {
		if rec.Hash == hash {
			return rec, nil
		}
	}
	return domain.FileRecord{}, domain.ErrFileNotFound
}

func (r *fakeFilesRepo) CreateFile(_ context.Context, f domain.FileRecord) (domain.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return domain.FileRecord{}, r.createErr
	}
	for _, rec := range r.byID {
		if rec.Hash == f.Hash {
			return domain.FileRecord{}, domain.ErrConflict
		}
	}
	r.nextID++
	r.inserts++
	f.ID = fmt.Sprintf("file-%04d", r.nextID)
	f.CreatedAt = time.Now()
	r.byID[f.ID] = f
	return f, nil
}

func (r *fakeFilesRepo) FileByID(_ context.Context, id string) (domain.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return domain.FileRecord{}, domain.ErrFileNotFound
	}
	return rec, nil
}

func (r *fakeFilesRepo) DeleteFile(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	r.deletes = append(r.deletes, id)
	return nil
}

type fakeViewsRepo struct {
	mu    sync.Mutex
	views map[string]domain.ViewRecord
}

func newFakeViewsRepo() *fakeViewsRepo {
	return &fakeViewsRepo{views: map[string]domain.ViewRecord{}}
}

func (r *fakeViewsRepo) UpsertView(_ context.Context, id string) (domain.ViewRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		v = domain.ViewRecord{FileID: id, Count: 1, LastViewed: time.Now()}
	} else {
		v.Count++
		v.LastViewed = time.Now()
	}
	r.views[id] = v
	return v, nil
}

func (r *fakeViewsRepo) ViewByID(_ context.Context, id string) (domain.ViewRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		return domain.ViewRecord{}, domain.ErrFileNotFound
	}
	return v, nil
}

type fakeBlobStorage struct {
	mu     sync.Mutex
	puts   map[string][]byte
	putErr error
}

func newFakeBlobStorage() *fakeBlobStorage {
	return &fakeBlobStorage{puts: map[string][]byte{}}
}

func (b *fakeBlobStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts[key] = data
	return nil
}

func (b *fakeBlobStorage) PresignGet(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://blob.example/%s?ct=%s&ttl=%d", key, contentType, int(ttl.Seconds())), nil
}

func (b *fakeBlobStorage) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.puts, key)
	return nil
}

func (b *fakeBlobStorage) Ping(context.Context) error { return nil }

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
	return nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close()                     {}
