package rooms

import (
	"testing"

	"github.com/tmarsh/gantry/pkg/errors"
)

func host() Player  { return Player{Username: "alice", Name: "Alice"} }
func guest() Player { return Player{Username: "bob", Name: "Bob"} }

func TestNewRoom(t *testing.T) {
	room := NewRoom("abc123", host())

	if room.Status != StatusWaiting {
		t.Errorf("Status = %v, want waiting", room.Status)
	}
	if room.Turn != SymbolX {
		t.Errorf("Turn = %v, want X", room.Turn)
	}
	if len(room.Board) != 9 {
		t.Fatalf("len(Board) = %d, want 9", len(room.Board))
	}
	for i, c := range room.Board {
		if c != "" {
			t.Errorf("Board[%d] = %q, want empty", i, c)
		}
	}
	if room.Players.X == nil || room.Players.X.Username != "alice" {
		t.Errorf("Players.X = %v, want host", room.Players.X)
	}
	if room.Players.O != nil {
		t.Errorf("Players.O = %v, want open seat", room.Players.O)
	}
}

func TestJoin(t *testing.T) {
	room := NewRoom("abc123", host())

	if err := room.Join(guest()); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if room.Status != StatusPlaying {
		t.Errorf("Status = %v, want playing", room.Status)
	}

	// Rejoin by either seat is a no-op.
	if err := room.Join(host()); err != nil {
		t.Errorf("rejoin as X error = %v", err)
	}
	if err := room.Join(guest()); err != nil {
		t.Errorf("rejoin as O error = %v", err)
	}

	// A third player is rejected.
	err := room.Join(Player{Username: "carol", Name: "Carol"})
	if !errors.Is(err, errors.ErrCodeRoomFull) {
		t.Errorf("third join error = %v, want ROOM_FULL", err)
	}
}

func TestMove_TurnEnforcement(t *testing.T) {
	room := NewRoom("abc123", host())
	room.Join(guest())

	if err := room.Move(0, "bob"); !errors.Is(err, errors.ErrCodeNotYourTurn) {
		t.Errorf("out-of-turn move error = %v, want NOT_YOUR_TURN", err)
	}
	if err := room.Move(0, "alice"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if room.Turn != SymbolO {
		t.Errorf("Turn = %v, want O after X moves", room.Turn)
	}
}

func TestMove_IllegalIndex(t *testing.T) {
	room := NewRoom("abc123", host())
	room.Join(guest())
	room.Move(4, "alice")

	tests := []struct {
		name  string
		index int
		user  string
	}{
		{"negative", -1, "bob"},
		{"out of range", 9, "bob"},
		{"occupied", 4, "bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := room.Move(tt.index, tt.user); !errors.Is(err, errors.ErrCodeInvalidMove) {
				t.Errorf("Move(%d) error = %v, want INVALID_MOVE", tt.index, err)
			}
		})
	}
}

func TestMove_WinAndGameOver(t *testing.T) {
	room := NewRoom("abc123", host())
	room.Join(guest())

	// X takes the top row: 0, 1, 2; O plays 3, 4.
	moves := []struct {
		index int
		user  string
	}{
		{0, "alice"}, {3, "bob"},
		{1, "alice"}, {4, "bob"},
		{2, "alice"},
	}
	for _, m := range moves {
		if err := room.Move(m.index, m.user); err != nil {
			t.Fatalf("Move(%d, %s) error = %v", m.index, m.user, err)
		}
	}

	if room.Status != StatusXWon {
		t.Errorf("Status = %v, want x_won", room.Status)
	}
	if err := room.Move(5, "bob"); !errors.Is(err, errors.ErrCodeGameOver) {
		t.Errorf("post-game move error = %v, want GAME_OVER", err)
	}
}

func TestMove_Draw(t *testing.T) {
	room := NewRoom("abc123", host())
	room.Join(guest())

	// X O X / X O O / O X X with no three in a row.
	moves := []struct {
		index int
		user  string
	}{
		{0, "alice"}, {1, "bob"},
		{2, "alice"}, {4, "bob"},
		{3, "alice"}, {5, "bob"},
		{7, "alice"}, {6, "bob"},
		{8, "alice"},
	}
	for _, m := range moves {
		if err := room.Move(m.index, m.user); err != nil {
			t.Fatalf("Move(%d, %s) error = %v", m.index, m.user, err)
		}
	}
	if room.Status != StatusDraw {
		t.Errorf("Status = %v, want draw", room.Status)
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		want  Symbol
	}{
		{"empty", make([]string, 9), ""},
		{"top row", []string{"X", "X", "X", "", "O", "O", "", "", ""}, SymbolX},
		{"left column", []string{"O", "X", "", "O", "X", "", "O", "", "X"}, SymbolO},
		{"diagonal", []string{"X", "O", "", "O", "X", "", "", "", "X"}, SymbolX},
		{"anti-diagonal", []string{"X", "X", "O", "", "O", "", "O", "", ""}, SymbolO},
		{"no line", []string{"X", "O", "X", "X", "O", "O", "O", "X", "X"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Winner(tt.board); got != tt.want {
				t.Errorf("Winner() = %q, want %q", got, tt.want)
			}
		})
	}
}
