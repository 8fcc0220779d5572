package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gatacompleta/GCA-AppointmentService/internal/api/handlers"
)

type ctxKey string

// UserIDKey ключ контекста с идентификатором пользователя
const UserIDKey ctxKey = "userID"

const msgUnauthorized = "требуется идентификация пользователя"

// Auth извлекает идентификатор пользователя из заголовка X-User-ID.
// Идентификацию выполняет API gateway; сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDHeader := r.Header.Get("X-User-ID")
		if userIDHeader == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(userIDHeader, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает идентификатор пользователя из контекста
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
