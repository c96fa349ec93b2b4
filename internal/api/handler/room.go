package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/chessroom-go/internal/api/apierr"
	"github.com/mcoot/chessroom-go/internal/api/middleware"
	"github.com/mcoot/chessroom-go/internal/api/request"
	"github.com/mcoot/chessroom-go/internal/api/response"
	"github.com/mcoot/chessroom-go/internal/model"
	"github.com/mcoot/chessroom-go/internal/services/opponent"
	"github.com/mcoot/chessroom-go/internal/services/room"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	rooms    room.ControllerInterface
	opponent *opponent.Service
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms room.ControllerInterface, opponentService *opponent.Service) *RoomHandler {
	return &RoomHandler{
		rooms:    rooms,
		opponent: opponentService,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if model.NormalizeRoomCode(req.Code) == "" {
		WriteError(w, apierr.NewInvalidRequestError("room code must not be empty"))
		return
	}

	view, err := h.rooms.CreateRoom(r.Context(), req.Code, req.VsEngine)
	if err != nil {
		WriteError(w, err)
		return
	}

	// A single-player room gets the engine seated immediately so the
	// creator takes white and can move first.
	if req.VsEngine && h.opponent != nil {
		if _, err := h.opponent.AttachToRoom(r.Context(), req.Code); err != nil {
			WriteError(w, err)
			return
		}
		view, err = h.rooms.GetRoomView(r.Context(), req.Code)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusCreated, response.RoomFromView(view))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	view, err := h.rooms.GetRoomView(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromView(view))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	code := mux.Vars(r)["code"]

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Empty body means no seat preference
		req = request.JoinRoomRequest{}
	}

	var preference *model.Seat
	switch req.Seat {
	case "":
	case string(model.SeatWhite), string(model.SeatBlack):
		seat := model.Seat(req.Seat)
		preference = &seat
	default:
		WriteError(w, apierr.NewInvalidRequestError("seat must be \"white\" or \"black\""))
		return
	}

	result, err := h.rooms.Join(r.Context(), code, participant, preference)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResult{
		Seat:      string(result.Seat),
		Spectator: result.Spectator,
	})
}

// Move handles POST /api/v1/rooms/{code}/moves
func (h *RoomHandler) Move(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	code := mux.Vars(r)["code"]

	var req request.SubmitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Input == "" {
		WriteError(w, apierr.NewInvalidRequestError("move input required"))
		return
	}

	canonical, view, err := h.rooms.SubmitMove(r.Context(), code, participant, req.Input)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResult{
		Move: canonical,
		Room: response.RoomFromView(view),
	})
}

// Resign handles POST /api/v1/rooms/{code}/resign
func (h *RoomHandler) Resign(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	code := mux.Vars(r)["code"]

	view, err := h.rooms.Resign(r.Context(), code, participant)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromView(view))
}

// EngineMove handles POST /api/v1/rooms/{code}/engine-move
func (h *RoomHandler) EngineMove(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if h.opponent == nil {
		WriteError(w, apierr.NewInvalidRequestError("no engine opponent configured"))
		return
	}

	canonical, err := h.opponent.PlayReply(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.rooms.GetRoomView(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResult{
		Move: canonical,
		Room: response.RoomFromView(view),
	})
}
