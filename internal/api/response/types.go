package response

import (
	"time"

	"github.com/mcoot/chessroom-go/internal/model"
)

// Room is the API projection of a room record
type Room struct {
	Code      string            `json:"code"`
	Position  string            `json:"position"`
	Moves     []string          `json:"moves"`
	Turn      string            `json:"turn"`
	Status    string            `json:"status"`
	Outcome   string            `json:"outcome,omitempty"`
	Seats     map[string]string `json:"seats"`
	VsEngine  bool              `json:"vs_engine,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// RoomFromView converts a room view to its API representation
func RoomFromView(view *model.RoomView) *Room {
	seats := make(map[string]string, len(view.Seats))
	for seat, participant := range view.Seats {
		seats[string(seat)] = string(participant)
	}
	return &Room{
		Code:      string(view.Code),
		Position:  view.Position,
		Moves:     view.Moves,
		Turn:      string(view.Turn),
		Status:    string(view.Status),
		Outcome:   string(view.Outcome),
		Seats:     seats,
		VsEngine:  view.VsEngine,
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
}

// JoinResult reports the seat (or spectator role) a join landed on
type JoinResult struct {
	Seat      string `json:"seat,omitempty"`
	Spectator bool   `json:"spectator,omitempty"`
}

// MoveResult reports the canonical token recorded for a submission and
// the resulting room state
type MoveResult struct {
	Move string `json:"move"`
	Room *Room  `json:"room"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
