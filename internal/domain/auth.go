package domain

import (
	"context"
	"time"
)

// Валидация токенов — ответственность внешнего identity-сервиса;
// здесь только контракт проверки Bearer на входе.

type Token = string

type TokenClaims struct {
	JTI       string // уникальный id токена
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Управление токенами (JWT, реализация в internal/auth/token)
type TokenManager interface {
	Issue(ctx context.Context, subject string) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}
