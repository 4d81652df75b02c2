// Пакет staging — временная локальная копия загружаемого файла.
// Поток пишется во временный файл с одновременным подсчётом MD5 и
// размера за один проход. Копия живёт ровно столько, сколько длится
// обработка запроса: вызывающая сторона обязана сделать defer Remove().
package staging

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Wizlit-Org/file-service/internal/domain"
)

// StagedFile — застейдженная копия загрузки вместе с посчитанными
// хэшем и точным размером.
type StagedFile struct {
	path        string
	removed     bool
	Hash        string // md5, 32 hex-символа, нижний регистр
	Size        int64
	Extension   string // без точки, нижний регистр
	ContentType string
}

// Stage сохраняет поток во временный файл в dir (пустая строка — системный
// temp), считая MD5 и размер на лету. Имя файла и content-type валидируются
// до записи: отсутствие расширения или типа — ErrInvalidFileFormat.
func Stage(dir string, r io.Reader, filename, contentType string) (*StagedFile, error) {
	ext, ok := ParseExtension(filename)
	if !ok {
		return nil, fmt.Errorf("%w: filename %q has no extension", domain.ErrInvalidFileFormat, filename)
	}
	if contentType == "" {
		return nil, fmt.Errorf("%w: missing content type", domain.ErrInvalidFileFormat)
	}

	f, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return nil, domain.Internal(err)
	}

	// streaming запись с одновременным подсчётом md5
	h := md5.New()
	size, err := io.Copy(f, io.TeeReader(r, h))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	return &StagedFile{
		path:        f.Name(),
		Hash:        hex.EncodeToString(h.Sum(nil)),
		Size:        size,
		Extension:   ext,
		ContentType: contentType,
	}, nil
}

// Open открывает копию для чтения с начала (для загрузки в блоб-хранилище).
func (s *StagedFile) Open() (*os.File, error) {
	return os.Open(s.path)
}

// Path — путь к локальной копии.
func (s *StagedFile) Path() string { return s.path }

// Remove удаляет временную копию. Идемпотентен; ошибка удаления
// сознательно игнорируется (best-effort cleanup).
func (s *StagedFile) Remove() {
	if s.removed {
		return
	}
	s.removed = true
	_ = os.Remove(s.path)
}

// ParseExtension выделяет расширение: подстрока после последней точки,
// в нижнем регистре. Точка в начале или в конце имени, как и её
// отсутствие — не расширение.
func ParseExtension(filename string) (string, bool) {
	i := strings.LastIndex(filename, ".")
	if i <= 0 || i == len(filename)-1 {
		return "", false
	}
	return strings.ToLower(filename[i+1:]), true
}
