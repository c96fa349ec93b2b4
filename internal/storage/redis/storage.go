package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/chessroom-go/internal/model"
	"github.com/mcoot/chessroom-go/internal/storage"
)

// Storage is a Redis-backed implementation of the store interface. The
// whole room mapping lives in one hash; SaveAll replaces it inside a
// MULTI/EXEC transaction so readers always see a complete mapping.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) LoadAll(ctx context.Context) (map[model.RoomCode]*model.Room, error) {
	fields, err := s.client.HGetAll(ctx, roomsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	rooms := make(map[model.RoomCode]*model.Room, len(fields))
	for code, data := range fields {
		var room model.Room
		if err := json.Unmarshal([]byte(data), &room); err != nil {
			return nil, fmt.Errorf("%w: corrupt room %q: %v", model.ErrStoreUnavailable, code, err)
		}
		rooms[model.RoomCode(code)] = &room
	}
	return rooms, nil
}

func (s *Storage) SaveAll(ctx context.Context, rooms map[model.RoomCode]*model.Room) error {
	encoded := make(map[string]any, len(rooms))
	for code, room := range rooms {
		data, err := json.Marshal(room)
		if err != nil {
			return fmt.Errorf("%w: encoding room %q: %v", model.ErrStoreUnavailable, code, err)
		}
		encoded[string(code)] = data
	}

	// Delete-and-rewrite in one transaction: readers see either the old
	// mapping or the new one, never a mix.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, roomsKey())
	if len(encoded) > 0 {
		pipe.HSet(ctx, roomsKey(), encoded)
	}
	if s.cfg.RoomsTTL > 0 {
		pipe.Expire(ctx, roomsKey(), s.cfg.RoomsTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return nil
}
