package domain

import "context"

// FilesRepo — хранилище метаданных файлов.
// Все ошибки уже классифицированы реализацией: ErrFileNotFound,
// ErrConflict (нарушение уникальности хэша) либо обёрнутая ErrInternal.
type FilesRepo interface {
	Close()
	Ping(context.Context) error
	// Поиск по контент-хэшу (ключ дедупликации).
	FileByHash(ctx context.Context, hash string) (FileRecord, error)
	// Вставка новой записи; id и created_at назначает БД.
	CreateFile(ctx context.Context, f FileRecord) (FileRecord, error)
	FileByID(ctx context.Context, id FileID) (FileRecord, error)
	// Компенсация: удаление записи, если загрузка блоба не удалась.
	DeleteFile(ctx context.Context, id FileID) error
}

// ViewsRepo — счётчики просмотров.
type ViewsRepo interface {
	// Атомарный upsert: нет записи — вставить с count=1,
	// есть — инкремент и обновление last_viewed.
	UpsertView(ctx context.Context, id FileID) (ViewRecord, error)
	ViewByID(ctx context.Context, id FileID) (ViewRecord, error)
}
