package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"meatstore-backend/pkg/utils"
)

// PanicRecovery keeps a panicking handler from taking down the server;
// a billing terminal mid-sale must always get a response.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
