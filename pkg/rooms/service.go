package rooms

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/tmarsh/gantry/pkg/errors"
	"github.com/tmarsh/gantry/pkg/observability"
)

// Service runs room operations against a RoomStore.
type Service struct {
	store RoomStore
}

// NewService creates a room service over the given store.
func NewService(store RoomStore) *Service {
	return &Service{store: store}
}

// roomIDAlphabet matches the short shareable codes players type in.
const roomIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newRoomID returns a 6-character room code.
func newRoomID() string {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(roomIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken.
			panic(err)
		}
		buf[i] = roomIDAlphabet[n.Int64()]
	}
	return string(buf)
}

// Create opens a new room hosted by the given player.
func (s *Service) Create(ctx context.Context, host Player) (*RoomState, error) {
	if host.Username == "" || host.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing username or name")
	}
	room := NewRoom(newRoomID(), host)
	if err := s.store.Put(ctx, room); err != nil {
		return nil, err
	}
	observability.Rooms().OnRoomCreate(ctx, room.ID)
	return room, nil
}

// Join seats a player in an existing room.
func (s *Service) Join(ctx context.Context, roomID string, p Player) (*RoomState, error) {
	if roomID == "" || p.Username == "" || p.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing roomId, username or name")
	}
	if err := errors.ValidateRoomID(roomID); err != nil {
		return nil, err
	}
	room, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	rejoin := room.Seated(p.Username)
	if err := room.Join(p); err != nil {
		return nil, err
	}
	if !rejoin {
		if err := s.store.Put(ctx, room); err != nil {
			return nil, err
		}
		observability.Rooms().OnRoomJoin(ctx, room.ID)
	}
	return room, nil
}

// Move plays one move for the given player.
func (s *Service) Move(ctx context.Context, roomID string, index int, username string) (*RoomState, error) {
	if roomID == "" || username == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing roomId, index, or username")
	}
	room, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := room.Move(index, username); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, room); err != nil {
		return nil, err
	}
	observability.Rooms().OnMove(ctx, room.ID, string(room.Status))
	return room, nil
}

// State retrieves the current room state.
func (s *Service) State(ctx context.Context, roomID string) (*RoomState, error) {
	if roomID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing roomId")
	}
	return s.store.Get(ctx, roomID)
}
