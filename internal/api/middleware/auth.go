package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

// userIDKey ключ контекста для ID аутентифицированного пользователя
type userIDKey struct{}

// Auth проверяет наличие заголовка X-User-ID и кладет его значение в контекст.
// Аутентификацию выполняет вышестоящий gateway; сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID достает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}
