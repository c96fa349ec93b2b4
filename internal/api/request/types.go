package request

// CreateRoomRequest is the body of POST /api/v1/rooms
type CreateRoomRequest struct {
	Code     string `json:"code"`
	VsEngine bool   `json:"vs_engine,omitempty"`
}

// JoinRoomRequest is the body of POST /api/v1/rooms/{code}/join.
// Seat is an optional preference ("white" or "black").
type JoinRoomRequest struct {
	Seat string `json:"seat,omitempty"`
}

// SubmitMoveRequest is the body of POST /api/v1/rooms/{code}/moves.
// Input is free-form: canonical notation, coordinates, or natural text
// for the normalizer to translate.
type SubmitMoveRequest struct {
	Input string `json:"input"`
}
