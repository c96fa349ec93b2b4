package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/chessroom-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes. Move rejections carry the stage that rejected
// them: turn ownership, notation, or legality.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeRoomExists       = "ROOM_EXISTS"
	CodeNotAParticipant  = "NOT_A_PARTICIPANT"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodeGameEnded        = "GAME_ENDED"
	CodeInvalidNotation  = "INVALID_NOTATION"
	CodeInvalidMove      = "INVALID_MOVE"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomExists):
		return &httpError{http.StatusConflict, APIError{CodeRoomExists, "Room code already taken"}}
	case errors.Is(err, model.ErrNotAParticipant):
		return &httpError{http.StatusForbidden, APIError{CodeNotAParticipant, "You hold no seat in this room"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrGameEnded):
		return &httpError{http.StatusConflict, APIError{CodeGameEnded, "Game has already ended"}}
	case errors.Is(err, model.ErrInvalidNotation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidNotation, "Input is not a recognizable move"}}
	case errors.Is(err, model.ErrInvalidMove):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidMove, "Move is not legal in the current position"}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Room store unavailable"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Participant token required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
