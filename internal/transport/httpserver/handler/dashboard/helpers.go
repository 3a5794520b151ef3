package dashboard

import (
	"net/http"

	commonhandler "orbit-expenses/internal/transport/httpserver/handler/common"
	"orbit-expenses/pkg/logger"
)

func (h *Handlers) requestLog(r *http.Request) logger.Logger {
	return commonhandler.RequestLog(r, h.log)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func parseCSV(value string) []string {
	return commonhandler.ParseCSV(value)
}
