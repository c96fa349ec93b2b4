package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"

	"github.com/mcoot/chessroom-go/internal/model"
	"github.com/mcoot/chessroom-go/internal/storage"
)

// Storage persists the room mapping as a single JSON document on disk.
// Saves go through a write-to-temporary plus atomic rename, so a reader
// never sees a half-written document even across abrupt interruption.
type Storage struct {
	path string
}

// New creates a file-backed storage writing to the given path
func New(path string) *Storage {
	return &Storage{path: path}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) LoadAll(ctx context.Context) (map[model.RoomCode]*model.Room, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// A file that does not exist yet is an empty mapping; any other
		// read failure is a hard store error.
		if errors.Is(err, fs.ErrNotExist) {
			return map[model.RoomCode]*model.Room{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", model.ErrStoreUnavailable, s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[model.RoomCode]*model.Room{}, nil
	}

	var rooms map[model.RoomCode]*model.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("%w: corrupt document %s: %v", model.ErrStoreUnavailable, s.path, err)
	}
	if rooms == nil {
		rooms = map[model.RoomCode]*model.Room{}
	}
	return rooms, nil
}

func (s *Storage) SaveAll(ctx context.Context, rooms map[model.RoomCode]*model.Room) error {
	data, err := json.MarshalIndent(rooms, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding rooms: %v", model.ErrStoreUnavailable, err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: writing %s: %v", model.ErrStoreUnavailable, s.path, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
