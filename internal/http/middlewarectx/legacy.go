// Package middlewarectx содержит HTTP middleware сервиса: ограничение частоты
// запросов, метрики Prometheus и режим совместимых статусов ошибок.
package middlewarectx

import (
	"net/http"

	"github.com/magabrotheeeer/gymbo-api/internal/http/response"
)

// LegacyErrors при enabled = true помечает каждый запрос так, что любая ошибка
// бизнес-логики отдаётся клиенту со статусом 500.
func LegacyErrors(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(response.WithLegacyStatus(r.Context())))
		})
	}
}
