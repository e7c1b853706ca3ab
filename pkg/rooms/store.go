package rooms

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tmarsh/gantry/pkg/errors"
)

// roomTTL is how long an untouched room survives. Every write refreshes it.
const roomTTL = 24 * time.Hour

// RoomStore persists game rooms.
type RoomStore interface {
	// Get retrieves a room by ID. Returns a ROOM_NOT_FOUND error when
	// the room does not exist or has expired.
	Get(ctx context.Context, id string) (*RoomState, error)

	// Put stores a room and refreshes its TTL.
	Put(ctx context.Context, room *RoomState) error

	// Close releases any underlying resources.
	Close() error
}

// RedisStore keeps rooms in Redis under ttt:room:<id> with a 24h TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed room store for the given address
// ("host:port").
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func roomKey(id string) string {
	return "ttt:room:" + id
}

// Get retrieves a room by ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*RoomState, error) {
	raw, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err == redis.Nil {
		return nil, errors.New(errors.ErrCodeRoomNotFound, "room not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "loading room %s", id)
	}
	var room RoomState
	if err := json.Unmarshal(raw, &room); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decoding room %s", id)
	}
	return &room, nil
}

// Put stores a room and refreshes its TTL.
func (s *RedisStore) Put(ctx context.Context, room *RoomState) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "encoding room %s", room.ID)
	}
	if err := s.client.Set(ctx, roomKey(room.ID), raw, roomTTL).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "saving room %s", room.ID)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements RoomStore.
var _ RoomStore = (*RedisStore)(nil)

// MemoryStore keeps rooms in process memory. Useful for testing and for
// single-process serving without Redis. Expiry is honored lazily on Get.
type MemoryStore struct {
	mu    sync.Mutex
	rooms map[string]memoryRoom
}

type memoryRoom struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory room store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]memoryRoom)}
}

// Get retrieves a room by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*RoomState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.rooms[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.rooms, id)
		return nil, errors.New(errors.ErrCodeRoomNotFound, "room not found")
	}
	var room RoomState
	if err := json.Unmarshal(entry.data, &room); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decoding room %s", id)
	}
	return &room, nil
}

// Put stores a room and refreshes its TTL.
func (s *MemoryStore) Put(ctx context.Context, room *RoomState) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "encoding room %s", room.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = memoryRoom{data: raw, expiresAt: time.Now().Add(roomTTL)}
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements RoomStore.
var _ RoomStore = (*MemoryStore)(nil)
