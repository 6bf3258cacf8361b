package response

import (
	"net/http"

	appctx "github.com/cloud4wi/signup-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request id set by the RequestID middleware.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
