package model

import (
	"strings"
	"time"
)

// RoomCode is the human-chosen shared identifier of a room. Codes are
// stored and compared case-insensitively.
type RoomCode string

// NormalizeRoomCode canonicalizes a raw code: trimmed, upper-cased.
func NormalizeRoomCode(raw string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// ParticipantID is the opaque identity of a participant. The bearer
// token presented on requests is the identity; there is no account
// behind it.
type ParticipantID string

// Seat is one of the two playing sides of a room
type Seat string

const (
	SeatWhite Seat = "white"
	SeatBlack Seat = "black"
)

// Other returns the opposing seat
func (s Seat) Other() Seat {
	if s == SeatWhite {
		return SeatBlack
	}
	return SeatWhite
}

// RoomStatus is the lifecycle state of a room's game
type RoomStatus string

const (
	RoomStatusOngoing RoomStatus = "ongoing"
	RoomStatusEnded   RoomStatus = "ended"
)

// Outcome records how an ended game concluded. The zero value means the
// game has no outcome yet.
type Outcome string

const (
	OutcomeWhiteWins Outcome = "white_wins"
	OutcomeBlackWins Outcome = "black_wins"
	OutcomeDraw      Outcome = "draw"
)

// WinnerOutcome returns the outcome in which the given seat wins
func WinnerOutcome(seat Seat) Outcome {
	if seat == SeatWhite {
		return OutcomeWhiteWins
	}
	return OutcomeBlackWins
}

// Room is the authoritative record of one game session. Position caches
// the FEN reached by replaying Moves; Moves is the source of truth for
// the game itself.
type Room struct {
	Code      RoomCode               `json:"code"`
	Position  string                 `json:"position"`
	Moves     []string               `json:"moves"`
	Turn      Seat                   `json:"turn"`
	Status    RoomStatus             `json:"status"`
	Outcome   Outcome                `json:"outcome,omitempty"`
	Seats     map[Seat]ParticipantID `json:"seats"`
	VsEngine  bool                   `json:"vs_engine,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// SeatOf returns the seat held by the participant, if any
func (r *Room) SeatOf(participant ParticipantID) (Seat, bool) {
	for seat, holder := range r.Seats {
		if holder == participant {
			return seat, true
		}
	}
	return "", false
}

// SeatOccupant returns the participant holding the seat, if any
func (r *Room) SeatOccupant(seat Seat) (ParticipantID, bool) {
	holder, ok := r.Seats[seat]
	return holder, ok
}

// SeatAvailableTo reports whether the participant could take the seat:
// it is empty, or they already hold it. A seat held by someone else is
// never available.
func (r *Room) SeatAvailableTo(seat Seat, participant ParticipantID) bool {
	holder, taken := r.Seats[seat]
	return !taken || holder == participant
}

// Ended reports whether the room's game is over
func (r *Room) Ended() bool {
	return r.Status == RoomStatusEnded
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	clone := *r
	clone.Moves = make([]string, len(r.Moves))
	copy(clone.Moves, r.Moves)
	clone.Seats = make(map[Seat]ParticipantID, len(r.Seats))
	for seat, participant := range r.Seats {
		clone.Seats[seat] = participant
	}
	return &clone
}

// RoomView is a read-only projection of a room handed out to callers.
// It shares no mutable state with the stored record.
type RoomView struct {
	Code      RoomCode
	Position  string
	Moves     []string
	Turn      Seat
	Status    RoomStatus
	Outcome   Outcome
	Seats     map[Seat]ParticipantID
	VsEngine  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View returns a read-only projection of the room
func (r *Room) View() *RoomView {
	clone := r.Clone()
	return &RoomView{
		Code:      clone.Code,
		Position:  clone.Position,
		Moves:     clone.Moves,
		Turn:      clone.Turn,
		Status:    clone.Status,
		Outcome:   clone.Outcome,
		Seats:     clone.Seats,
		VsEngine:  clone.VsEngine,
		CreatedAt: clone.CreatedAt,
		UpdatedAt: clone.UpdatedAt,
	}
}
