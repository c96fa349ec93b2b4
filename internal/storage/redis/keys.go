package redis

// Key prefix for all room data
const keyPrefix = "chessroom"

// roomsKey returns the Redis key of the hash holding the full
// code-to-room mapping (one field per room, JSON values).
func roomsKey() string {
	return keyPrefix + ":rooms"
}
