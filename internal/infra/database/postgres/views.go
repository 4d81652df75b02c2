package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Wizlit-Org/file-service/internal/domain"
)

// UpsertView — атомарный инкремент счётчика просмотров. Нет строки —
// вставка с count=1; есть — инкремент и сдвиг last_viewed. Решение
// insert-vs-update принимает сама БД (ON CONFLICT), поэтому параллельные
// просмотры не теряют инкременты.
func (r *PGRepo) UpsertView(ctx context.Context, id domain.FileID) (domain.ViewRecord, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.views", r.schema)).
		Columns("file_id", "view_count", "last_viewed_timestamp").
		Values(id, 1, sq.Expr("now()")).
		Suffix(`ON CONFLICT (file_id) DO UPDATE
			SET view_count = views.view_count + 1,
			    last_viewed_timestamp = now()
			RETURNING file_id, view_count, last_viewed_timestamp`)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpsertView", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var v domain.ViewRecord
	if err := row.Scan(&v.FileID, &v.Count, &v.LastViewed); err != nil {
		r.logger.Printf("UpsertView scan error after %s: %v", time.Since(start), err)
		return domain.ViewRecord{}, classify(err)
	}
	r.logger.Printf("UpsertView ok in %s id=%s count=%d", time.Since(start), v.FileID, v.Count)
	return v, nil
}

func (r *PGRepo) ViewByID(ctx context.Context, id domain.FileID) (domain.ViewRecord, error) {
	q := r.qb().Select("file_id", "view_count", "last_viewed_timestamp").
		From(fmt.Sprintf("%s.views", r.schema)).
		Where(sq.Eq{"file_id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ViewByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var v domain.ViewRecord
	if err := row.Scan(&v.FileID, &v.Count, &v.LastViewed); err != nil {
		r.logger.Printf("ViewByID scan error after %s: %v", time.Since(start), err)
		return domain.ViewRecord{}, classify(err)
	}
	r.logger.Printf("ViewByID ok in %s id=%s", time.Since(start), v.FileID)
	return v, nil
}
