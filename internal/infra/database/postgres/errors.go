package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Wizlit-Org/file-service/internal/domain"
)

// unique_violation по классификатору ошибок Postgres
const codeUniqueViolation = "23505"

// classify переводит нетипизированные ошибки драйвера в доменную
// таксономию. Вместо сопоставления подстрок текста сообщения (как в
// старых слоях поверх нетипизированных ORM-ошибок) используются коды
// ошибок Postgres: отсутствие строки — ErrFileNotFound, нарушение
// уникальности — ErrConflict, всё прочее оборачивается в ErrInternal
// с сохранением исходной причины.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrFileNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return domain.ErrConflict
	}
	return domain.Internal(err)
}
