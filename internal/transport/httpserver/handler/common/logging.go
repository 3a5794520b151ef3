package common

import (
	"net/http"

	"orbit-expenses/pkg/logger"
)

// RequestLog returns the logger the auth middleware scoped to r, falling back
// to base for routes outside the authenticated group.
func RequestLog(r *http.Request, base logger.Logger) logger.Logger {
	return logger.FromContext(r.Context(), base)
}

func (h *Handlers) requestLog(r *http.Request) logger.Logger {
	return RequestLog(r, h.log)
}
