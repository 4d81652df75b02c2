package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Wizlit-Org/file-service/internal/domain"
)

const fileColumns = "file_id, file_size, file_uploader, file_created_timestamp, file_type, file_extension, file_hash"

func (r *PGRepo) FileByHash(ctx context.Context, hash string) (domain.FileRecord, error) {
	q := r.qb().Select(
		"file_id", "file_size", "file_uploader", "file_created_timestamp",
		"file_type", "file_extension", "file_hash",
	).
		From(fmt.Sprintf("%s.files", r.schema)).
		Where(sq.Eq{"file_hash": hash})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FileByHash", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var f domain.FileRecord
	if err := row.Scan(&f.ID, &f.Size, &f.Uploader, &f.CreatedAt, &f.Type, &f.Extension, &f.Hash); err != nil {
		r.logger.Printf("FileByHash scan error after %s: %v", time.Since(start), err)
		return domain.FileRecord{}, classify(err)
	}
	r.logger.Printf("FileByHash ok in %s id=%s", time.Since(start), f.ID)
	return f, nil
}

// CreateFile вставляет метаданные; file_id и created_timestamp назначает БД.
// Нарушение UNIQUE(file_hash) возвращается как domain.ErrConflict —
// вызывающая сторона разрешает его как dedup-hit.
func (r *PGRepo) CreateFile(ctx context.Context, f domain.FileRecord) (domain.FileRecord, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.files", r.schema)).
		Columns("file_size", "file_uploader", "file_type", "file_extension", "file_hash").
		Values(f.Size, f.Uploader, f.Type, f.Extension, f.Hash).
		Suffix("RETURNING " + fileColumns)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateFile", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.FileRecord
	if err := row.Scan(&out.ID, &out.Size, &out.Uploader, &out.CreatedAt, &out.Type, &out.Extension, &out.Hash); err != nil {
		r.logger.Printf("CreateFile scan error after %s: %v", time.Since(start), err)
		return domain.FileRecord{}, classify(err)
	}
	r.logger.Printf("CreateFile ok in %s id=%s hash=%s", time.Since(start), out.ID, out.Hash)
	return out, nil
}

func (r *PGRepo) FileByID(ctx context.Context, id domain.FileID) (domain.FileRecord, error) {
	q := r.qb().Select(
		"file_id", "file_size", "file_uploader", "file_created_timestamp",
		"file_type", "file_extension", "file_hash",
	).
		From(fmt.Sprintf("%s.files", r.schema)).
		Where(sq.Eq{"file_id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FileByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var f domain.FileRecord
	if err := row.Scan(&f.ID, &f.Size, &f.Uploader, &f.CreatedAt, &f.Type, &f.Extension, &f.Hash); err != nil {
		r.logger.Printf("FileByID scan error after %s: %v", time.Since(start), err)
		return domain.FileRecord{}, classify(err)
	}
	r.logger.Printf("FileByID ok in %s id=%s", time.Since(start), f.ID)
	return f, nil
}

// DeleteFile — компенсация несостоявшейся загрузки блоба.
func (r *PGRepo) DeleteFile(ctx context.Context, id domain.FileID) error {
	q := r.qb().Delete(fmt.Sprintf("%s.files", r.schema)).
		Where(sq.Eq{"file_id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteFile", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteFile exec error after %s: %v", time.Since(start), err)
		return classify(err)
	}
	r.logger.Printf("DeleteFile ok in %s rows=%d", time.Since(start), tag.RowsAffected())
	return nil
}
