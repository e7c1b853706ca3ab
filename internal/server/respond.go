package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/tmarsh/gantry/pkg/errors"
)

// errorEnvelope is the wire shape of every error response.
type errorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps an error to its HTTP status and writes the error envelope.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(apperrors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorEnvelope{
		OK:    false,
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidDate,
		apperrors.ErrCodeInvalidColor,
		apperrors.ErrCodeInvalidZoom,
		apperrors.ErrCodeInvalidMove:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeTaskNotFound,
		apperrors.ErrCodeGroupNotFound,
		apperrors.ErrCodeVersionNotFound,
		apperrors.ErrCodeRoomNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeRoomFull,
		apperrors.ErrCodeNotYourTurn:
		return http.StatusForbidden
	case apperrors.ErrCodeCycle,
		apperrors.ErrCodeGameOver:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
