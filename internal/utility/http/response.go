package http

import (
	"encoding/json"
	"net/http"

	"quizify/internal/logger"

	"go.uber.org/zap"
)

// M is the free-form payload merged into the response envelope.
type M map[string]interface{}

// RespondSuccess writes the {success, message, ...payload} envelope with the
// payload keys spread at the top level.
func RespondSuccess(w http.ResponseWriter, code int, message string, payload M) {
	body := M{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	sendJSONResponse(w, code, body)
}

// RespondError writes {success:false, message}. The underlying error, if any,
// is logged with full detail and never leaks to the caller.
func RespondError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		logger.Log.Error(message, zap.Int("status", code), zap.Error(err))
	}
	sendJSONResponse(w, code, M{
		"success": false,
		"message": message,
	})
}

// RespondConflict reports a unique-constraint violation, naming the field and
// the offending value.
func RespondConflict(w http.ResponseWriter, field string, message string, value interface{}) {
	sendJSONResponse(w, http.StatusConflict, M{
		"success": false,
		"message": message,
		"field":   field,
		"value":   value,
	})
}

func sendJSONResponse(w http.ResponseWriter, code int, body M) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("Failed to encode response", zap.Error(err))
	}
}
