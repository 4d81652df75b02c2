package domain

import (
	"errors"
	"fmt"
)

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams         = errors.New("bad_params")          // 400
	ErrInvalidFileFormat = errors.New("invalid_file_format") // 400: имя без расширения или нет content-type
	ErrUnauth            = errors.New("unauthorized")        // 401
	ErrFileNotFound      = errors.New("file_not_found")      // 404
	ErrTooLarge          = errors.New("file_too_large")      // 413
	ErrConflict          = errors.New("conflict")            // наружу не выходит: гасится dedup-веткой
	ErrInternal          = errors.New("internal")            // 500, оборачивает исходную причину
	ErrUnexpected        = errors.New("unexpected")          // 500, фолбэк без классификации
)

// Machine-readable коды для конверта ошибок
const (
	ErrCodeBadParams         = 1000
	ErrCodeUnauth            = 1001
	ErrCodeInvalidFileFormat = 1002
	ErrCodeFileNotFound      = 1003
	ErrCodeTooLarge          = 1004
	ErrCodeInternal          = 1005
	ErrCodeUnexpected        = 1999
)

// Internal оборачивает неклассифицированную ошибку нижнего слоя,
// сохраняя исходную причину для диагностики.
func Internal(cause error) error {
	return fmt.Errorf("%w: %v", ErrInternal, cause)
}
