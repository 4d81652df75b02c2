package domain

import (
	"fmt"
	"time"
)

// FileID — непрозрачный строковый идентификатор файла (генерируется БД).
type FileID = string

// Метаданные файла. Запись создаётся один раз при первой загрузке
// контента с данным хэшем и далее не меняется.
type FileRecord struct {
	ID        FileID    `json:"id"`
	Size      int64     `json:"size"`
	Uploader  int64     `json:"uploader"`
	CreatedAt time.Time `json:"created_at"`
	Type      string    `json:"type"`      // заявленный MIME
	Extension string    `json:"extension"` // без точки, в нижнем регистре
	Hash      string    `json:"hash"`      // md5, 32 hex-символа
}

// StorageKey — ключ объекта в блоб-хранилище: "<fileId>.<ext>", без префикса.
func (f FileRecord) StorageKey() string {
	return f.ID + "." + f.Extension
}

// Счётчик просмотров, один-к-одному с FileRecord по file_id.
// Существует только если файл смотрели хотя бы раз.
type ViewRecord struct {
	FileID     FileID    `json:"file_id"`
	Count      int64     `json:"count"`
	LastViewed time.Time `json:"last_viewed"`
}

// Внешнее представление FileRecord (формат ответа API).
type FileDescriptor struct {
	FullName             string `json:"fullName"`
	FileID               string `json:"fileId"`
	FileSize             int64  `json:"fileSize"`
	FileUploader         int64  `json:"fileUploader"`
	FileCreatedTimestamp int64  `json:"fileCreatedTimestamp"` // epoch millis
	FileType             string `json:"fileType"`
	FileExtension        string `json:"fileExtension"`
}

func NewFileDescriptor(f FileRecord) FileDescriptor {
	return FileDescriptor{
		FullName:             f.StorageKey(),
		FileID:               f.ID,
		FileSize:             f.Size,
		FileUploader:         f.Uploader,
		FileCreatedTimestamp: f.CreatedAt.UnixMilli(),
		FileType:             f.Type,
		FileExtension:        f.Extension,
	}
}

func (d FileDescriptor) String() string {
	return fmt.Sprintf("%s (%d bytes, %s)", d.FullName, d.FileSize, d.FileType)
}
