package memory

import (
	"context"
	"sync"

	"github.com/mcoot/chessroom-go/internal/model"
	"github.com/mcoot/chessroom-go/internal/storage"
)

// Storage is an in-memory implementation of the store interface. Rooms
// are deep-copied on the way in and out so callers can never alias the
// stored records.
type Storage struct {
	mu    sync.RWMutex
	rooms map[model.RoomCode]*model.Room
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomCode]*model.Room),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) LoadAll(ctx context.Context) (map[model.RoomCode]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[model.RoomCode]*model.Room, len(s.rooms))
	for code, room := range s.rooms {
		snapshot[code] = room.Clone()
	}
	return snapshot, nil
}

func (s *Storage) SaveAll(ctx context.Context, rooms map[model.RoomCode]*model.Room) error {
	replacement := make(map[model.RoomCode]*model.Room, len(rooms))
	for code, room := range rooms {
		replacement[code] = room.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = replacement
	return nil
}

func (s *Storage) Close() error {
	return nil
}
