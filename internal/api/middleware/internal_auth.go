package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

// InternalTokenHeader заголовок аутентификации служебных маршрутов
const InternalTokenHeader = "X-Internal-Token"

// InternalAuth проверяет служебный токен для маршрутов /internal
// Служебные маршруты (инвалидация, прогрев, диагностика кэша) доступны
// только доверенным сервисам внутри периметра
func InternalAuth(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(InternalTokenHeader)
			if got == "" {
				handlers.RespondUnauthorized(w, "требуется заголовок "+InternalTokenHeader)
				return
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondForbidden(w, "недействительный служебный токен")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
