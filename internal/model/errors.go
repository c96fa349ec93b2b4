package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room code already exists")

	// Participation errors
	ErrNotAParticipant = errors.New("participant holds no seat in this room")
	ErrNotYourTurn     = errors.New("not this participant's turn")
	ErrGameEnded       = errors.New("game has already ended")

	// Move errors. ErrInvalidNotation means the input could not be read
	// as a move at all (or was ambiguous); ErrInvalidMove means it was a
	// well-formed move that is illegal in the current position.
	ErrInvalidNotation = errors.New("input is not a recognizable move")
	ErrInvalidMove     = errors.New("move is not legal in the current position")

	// Storage errors
	ErrStoreUnavailable = errors.New("room store unavailable")
)
