package storage

import (
	"context"

	"github.com/mcoot/chessroom-go/internal/model"
)

// Store is durable keyed storage for room records. It exposes
// whole-mapping semantics: LoadAll returns a snapshot of every room and
// SaveAll atomically replaces the persisted mapping, so that concurrent
// readers never observe a partially written mapping.
//
// The store provides no per-room locking; the session coordinator
// serializes its own load-compute-save cycles on top of it.
type Store interface {
	// LoadAll returns the full code-to-room mapping. An absent or empty
	// backing medium yields an empty mapping; an unreadable or corrupt
	// medium fails with model.ErrStoreUnavailable (the two are never
	// conflated).
	LoadAll(ctx context.Context) (map[model.RoomCode]*model.Room, error)

	// SaveAll durably replaces the entire mapping in one atomic step.
	SaveAll(ctx context.Context, rooms map[model.RoomCode]*model.Room) error

	// Close releases any resources held by the store
	Close() error
}
