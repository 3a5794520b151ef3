package expenses

import (
	"errors"
	"net/http"

	expensesdomain "orbit-expenses/internal/domain/expenses"
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

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	commonhandler.WriteCSV(w, filename, data)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func parseIDParam(value string) (int64, error) {
	return commonhandler.ParseIDParam(value)
}

func parseBoolParam(value string) bool {
	return commonhandler.ParseBoolParam(value)
}

// writeValidationError maps input errors from the expenses service to 400
// responses. It reports whether err was one of them.
func writeValidationError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, expensesdomain.ErrTitleRequired),
		errors.Is(err, expensesdomain.ErrInvalidDate),
		errors.Is(err, expensesdomain.ErrCategoryRequired),
		errors.Is(err, expensesdomain.ErrLabelRequired),
		errors.Is(err, expensesdomain.ErrInvalidColor),
		errors.Is(err, expensesdomain.ErrIconNameRequired),
		errors.Is(err, expensesdomain.ErrCategoryIDInvalid):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return true
	default:
		return false
	}
}
