package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
)

// AdminIDHeader заголовок, который проставляет шлюз после аутентификации администратора
const AdminIDHeader = "X-Admin-ID"

type contextKey string

const adminIDKey contextKey = "admin_id"

// AdminAuth пропускает только запросы с заголовком X-Admin-ID
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := strings.TrimSpace(r.Header.Get(AdminIDHeader))
		if adminID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+AdminIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID извлекает ID администратора из контекста
func GetAdminID(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(adminIDKey).(string)
	return adminID, ok && adminID != ""
}
