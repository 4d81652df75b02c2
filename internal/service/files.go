// Пакет service — оркестрация загрузки с дедупликацией и учёта просмотров.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/staging"
)

type Files struct {
	log     *log.Logger
	files   domain.FilesRepo
	views   domain.ViewsRepo
	blobs   domain.BlobStorage
	cache   domain.Cache
	metaTTL int // секунд
}

func NewFiles(logger *log.Logger, files domain.FilesRepo, views domain.ViewsRepo,
	blobs domain.BlobStorage, cache domain.Cache, metaTTLSeconds int) *Files {
	return &Files{
		log:     logger,
		files:   files,
		views:   views,
		blobs:   blobs,
		cache:   cache,
		metaTTL: metaTTLSeconds,
	}
}

// Ingest — загрузка с дедупликацией по контент-хэшу.
//
// Порядок строго последовательный: поиск по хэшу → вставка метаданных →
// загрузка блоба. При совпадении хэша возвращается существующая запись без
// единой записи в хранилища — повторная загрузка того же контента
// идемпотентна, uploader первой загрузки сохраняется.
//
// Гонку двух одновременных загрузок одного контента закрывает UNIQUE на
// file_hash: проигравший insert получает ErrConflict и перечитывает запись
// победителя. Если загрузка блоба после вставки не удалась, запись
// метаданных компенсирующе удаляется (best-effort), чтобы повтор не
// дедуплицировался на запись без блоба.
func (s *Files) Ingest(ctx context.Context, st *staging.StagedFile, uploader int64) (domain.FileDescriptor, error) {
	start := time.Now()

	existing, err := s.files.FileByHash(ctx, st.Hash)
	if err == nil {
		s.log.Printf("Ingest dedup hit in %s hash=%s id=%s", time.Since(start), st.Hash, existing.ID)
		return domain.NewFileDescriptor(existing), nil
	}
	if !errors.Is(err, domain.ErrFileNotFound) {
		s.log.Printf("Ingest hash lookup error: %v", err)
		return domain.FileDescriptor{}, err
	}

	rec, err := s.files.CreateFile(ctx, domain.FileRecord{
		Size:      st.Size,
		Uploader:  uploader,
		Type:      st.ContentType,
		Extension: st.Extension,
		Hash:      st.Hash,
	})
	if errors.Is(err, domain.ErrConflict) {
		// параллельная загрузка того же контента успела раньше
		winner, werr := s.files.FileByHash(ctx, st.Hash)
		if werr != nil {
			s.log.Printf("Ingest conflict re-read error: %v", werr)
			return domain.FileDescriptor{}, werr
		}
		s.log.Printf("Ingest conflict resolved as dedup hit hash=%s id=%s", st.Hash, winner.ID)
		return domain.NewFileDescriptor(winner), nil
	}
	if err != nil {
		s.log.Printf("Ingest insert error: %v", err)
		return domain.FileDescriptor{}, err
	}

	f, err := st.Open()
	if err != nil {
		s.compensate(ctx, rec.ID)
		return domain.FileDescriptor{}, domain.Internal(fmt.Errorf("open staged file: %w", err))
	}
	defer f.Close()

	if err := s.blobs.Put(ctx, rec.StorageKey(), f, st.Size, st.ContentType); err != nil {
		s.log.Printf("Ingest blob put error key=%s: %v", rec.StorageKey(), err)
		s.compensate(ctx, rec.ID)
		return domain.FileDescriptor{}, domain.Internal(fmt.Errorf("blob put: %w", err))
	}

	s.log.Printf("Ingest ok in %s id=%s size=%d hash=%s", time.Since(start), rec.ID, rec.Size, rec.Hash)
	return domain.NewFileDescriptor(rec), nil
}

// compensate удаляет свежевставленную запись метаданных, если блоб так и
// не был записан. Ошибка компенсации только логируется.
func (s *Files) compensate(ctx context.Context, id domain.FileID) {
	if err := s.files.DeleteFile(ctx, id); err != nil {
		s.log.Printf("compensate delete failed id=%s: %v", id, err)
	}
}

// RecordView — фиксация просмотра: метаданные по id плюс атомарный upsert
// счётчика (первый просмотр — count=1, далее инкремент + обновление
// last_viewed). Неизвестный id — ErrFileNotFound, счётчик не создаётся.
// Метаданные кешируются в Redis: записи иммутабельны, достаточно TTL.
func (s *Files) RecordView(ctx context.Context, id domain.FileID) (domain.FileDescriptor, error) {
	rec, ok := s.cachedFile(ctx, id)
	if !ok {
		var err error
		rec, err = s.files.FileByID(ctx, id)
		if err != nil {
			return domain.FileDescriptor{}, err
		}
		s.cacheFile(ctx, rec)
	}

	view, err := s.views.UpsertView(ctx, rec.ID)
	if err != nil {
		s.log.Printf("RecordView upsert error id=%s: %v", rec.ID, err)
		return domain.FileDescriptor{}, err
	}
	s.log.Printf("RecordView ok id=%s count=%d", rec.ID, view.Count)
	return domain.NewFileDescriptor(rec), nil
}

func (s *Files) cachedFile(ctx context.Context, id domain.FileID) (domain.FileRecord, bool) {
	b, err := s.cache.Get(ctx, domain.CacheKeyFileMeta(id))
	if err != nil || len(b) == 0 {
		return domain.FileRecord{}, false
	}
	var rec domain.FileRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.FileRecord{}, false
	}
	return rec, true
}

func (s *Files) cacheFile(ctx context.Context, rec domain.FileRecord) {
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, domain.CacheKeyFileMeta(rec.ID), b, s.metaTTL); err != nil {
		s.log.Printf("cache set failed id=%s: %v", rec.ID, err)
	}
}
