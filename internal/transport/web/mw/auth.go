package mw

import (
	"net/http"
	"strings"

	"github.com/Wizlit-Org/file-service/internal/domain"
)

type AuthDeps struct {
	Tokens domain.TokenManager
}

// RequireAuth — проверка Bearer-токена. Выдача токенов — зона
// ответственности внешнего identity-сервиса; здесь только валидация
// подписи/issuer/срока.
func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			http.Error(w, `{"error":{"code":1001,"text":"unauthorized"}}`, http.StatusUnauthorized)
			return
		}
		if _, err := deps.Tokens.Parse(r.Context(), raw); err != nil {
			http.Error(w, `{"error":{"code":1001,"text":"unauthorized"}}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
