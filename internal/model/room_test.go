package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoomCode(t *testing.T) {
	assert.Equal(t, RoomCode("ABC123"), NormalizeRoomCode(" abc123 "))
	assert.Equal(t, RoomCode("ABC123"), NormalizeRoomCode("ABC123"))
}

func TestSeatOther(t *testing.T) {
	assert.Equal(t, SeatBlack, SeatWhite.Other())
	assert.Equal(t, SeatWhite, SeatBlack.Other())
}

func TestWinnerOutcome(t *testing.T) {
	assert.Equal(t, OutcomeWhiteWins, WinnerOutcome(SeatWhite))
	assert.Equal(t, OutcomeBlackWins, WinnerOutcome(SeatBlack))
}

func TestSeatAvailableTo(t *testing.T) {
	room := &Room{Seats: map[Seat]ParticipantID{SeatWhite: "alice"}}

	assert.True(t, room.SeatAvailableTo(SeatWhite, "alice"))
	assert.False(t, room.SeatAvailableTo(SeatWhite, "bob"))
	assert.True(t, room.SeatAvailableTo(SeatBlack, "bob"))
}

func TestCloneIsDeep(t *testing.T) {
	room := &Room{
		Code:  "ABC123",
		Moves: []string{"e4"},
		Seats: map[Seat]ParticipantID{SeatWhite: "alice"},
	}

	clone := room.Clone()
	clone.Moves[0] = "d4"
	clone.Seats[SeatBlack] = "bob"

	assert.Equal(t, []string{"e4"}, room.Moves)
	assert.Len(t, room.Seats, 1)
}

func TestViewSharesNothing(t *testing.T) {
	room := &Room{
		Code:  "ABC123",
		Moves: []string{"e4", "e5"},
		Seats: map[Seat]ParticipantID{SeatWhite: "alice"},
	}

	view := room.View()
	view.Moves[0] = "d4"
	view.Seats[SeatWhite] = "mallory"

	assert.Equal(t, "e4", room.Moves[0])
	assert.Equal(t, ParticipantID("alice"), room.Seats[SeatWhite])
}
