package auth

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/api/respond"
)

// Middleware rejects requests whose x-access-code header fails authorization.
func Middleware(a Authorizer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := a.Authorize(r.Header.Get(Header)); err != nil {
				respond.WriteUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
