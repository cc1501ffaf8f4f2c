package middleware

import (
	"net/http"
)

const tooLargeBody = `{"error":{"code":"payload_too_large","message":"request body too large"}}`

// NewMaxBodySizeHandler caps request bodies at limit bytes. A declared
// Content-Length over the limit is answered with 413 straight away; other
// bodies are wrapped in http.MaxBytesReader so the decoder fails once the
// limit is crossed and the handler can answer 413 itself.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(tooLargeBody))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
