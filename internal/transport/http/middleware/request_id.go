package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/cloud4wi/signup-service/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID tags every request with an id for log and error correlation.
// A caller-supplied X-Request-Id is honored so ids survive the edge proxy.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := appctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
