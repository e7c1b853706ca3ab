// Package rooms implements the multiplayer tic-tac-toe rooms that ship
// alongside the timeline: room lifecycle, turn validation, and win
// detection. Game state lives in a RoomStore keyed by short room codes;
// the rules themselves are pure functions over RoomState so they can be
// tested without any backend.
package rooms

import (
	"time"

	"github.com/tmarsh/gantry/pkg/errors"
)

// Symbol is a player's mark.
type Symbol string

// The two marks.
const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"
)

// Status is a room's lifecycle state.
type Status string

// Room statuses.
const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusXWon    Status = "x_won"
	StatusOWon    Status = "o_won"
	StatusDraw    Status = "draw"
)

// Player identifies a participant.
type Player struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Players holds the seat assignments. A nil seat is open.
type Players struct {
	X *Player `json:"X"`
	O *Player `json:"O"`
}

// RoomState is the full state of one game room. Board cells hold "X",
// "O", or "" for empty; the board is always 9 cells in row-major order.
type RoomState struct {
	ID        string   `json:"id"`
	CreatedAt int64    `json:"createdAt"` // unix milliseconds
	Board     []string `json:"board"`
	Turn      Symbol   `json:"turn"`
	Players   Players  `json:"players"`
	Status    Status   `json:"status"`
}

// wins lists the eight winning lines by board index.
var wins = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// NewRoom creates a waiting room hosted by the given player, who takes X.
func NewRoom(id string, host Player) *RoomState {
	return &RoomState{
		ID:        id,
		CreatedAt: time.Now().UnixMilli(),
		Board:     make([]string, 9),
		Turn:      SymbolX,
		Players:   Players{X: &host},
		Status:    StatusWaiting,
	}
}

// Seated reports whether the username already occupies a seat.
func (r *RoomState) Seated(username string) bool {
	if r.Players.X != nil && r.Players.X.Username == username {
		return true
	}
	return r.Players.O != nil && r.Players.O.Username == username
}

// Join seats the player as O and starts the game. Rejoining players are
// accepted without changing the room. A room with both seats taken by
// other players is full.
func (r *RoomState) Join(p Player) error {
	if r.Seated(p.Username) {
		return nil
	}
	if r.Players.O != nil {
		return errors.New(errors.ErrCodeRoomFull, "room full")
	}
	r.Players.O = &p
	r.Status = StatusPlaying
	return nil
}

// Move places the current player's mark at the given board index,
// advancing the turn or finishing the game. The username must match the
// player whose turn it is.
func (r *RoomState) Move(index int, username string) error {
	if r.Status != StatusPlaying && r.Status != StatusWaiting {
		return errors.New(errors.ErrCodeGameOver, "game already finished")
	}

	seat := r.Players.X
	if r.Turn == SymbolO {
		seat = r.Players.O
	}
	if seat == nil || seat.Username != username {
		return errors.New(errors.ErrCodeNotYourTurn, "not your turn")
	}

	if index < 0 || index > 8 || r.Board[index] != "" {
		return errors.New(errors.ErrCodeInvalidMove, "illegal move")
	}

	r.Board[index] = string(r.Turn)

	switch Winner(r.Board) {
	case SymbolX:
		r.Status = StatusXWon
	case SymbolO:
		r.Status = StatusOWon
	default:
		if boardFull(r.Board) {
			r.Status = StatusDraw
		} else if r.Turn == SymbolX {
			r.Turn = SymbolO
		} else {
			r.Turn = SymbolX
		}
	}
	return nil
}

// Winner returns the mark holding a winning line, or "" if none.
func Winner(board []string) Symbol {
	for _, line := range wins {
		a, b, c := line[0], line[1], line[2]
		if board[a] != "" && board[a] == board[b] && board[b] == board[c] {
			return Symbol(board[a])
		}
	}
	return ""
}

func boardFull(board []string) bool {
	for _, c := range board {
		if c == "" {
			return false
		}
	}
	return true
}
