package middleware

import (
	"net/http"
	"strings"

	"roamify/pkg/logger"
)

func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresBody(r.Method) {
				contentType := mediaType(r.Header.Get("Content-Type"))
				if contentType != "application/json" {
					log.Warn("Invalid Content-Type header",
						"request_id", requestIDFromContext(r.Context()),
						"content_type", contentType,
						"method", r.Method,
						"path", r.URL.Path,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnsupportedMediaType)
					_, _ = w.Write([]byte(`{"error":"Content-Type must be application/json"}`))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func mediaType(header string) string {
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(header, ";")[0])
}
