package server

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/tmarsh/gantry/pkg/errors"
	"github.com/tmarsh/gantry/pkg/rooms"
)

// roomEnvelope is the wire shape of every room response.
type roomEnvelope struct {
	OK   bool             `json:"ok"`
	Room *rooms.RoomState `json:"room,omitempty"`
}

func writeRoom(w http.ResponseWriter, room *rooms.RoomState) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, roomEnvelope{OK: true, Room: room})
}

func (s *Server) handleRoomCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decoding request"))
		return
	}
	room, err := s.rooms.Create(r.Context(), rooms.Player{Username: body.Username, Name: body.Name})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeRoom(w, room)
}

func (s *Server) handleRoomJoin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID   string `json:"roomId"`
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decoding request"))
		return
	}
	room, err := s.rooms.Join(r.Context(), body.RoomID, rooms.Player{Username: body.Username, Name: body.Name})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeRoom(w, room)
}

func (s *Server) handleRoomMove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID   string `json:"roomId"`
		Index    *int   `json:"index"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decoding request"))
		return
	}
	if body.Index == nil {
		s.fail(w, apperrors.New(apperrors.ErrCodeInvalidInput, "missing roomId, index, or username"))
		return
	}
	room, err := s.rooms.Move(r.Context(), body.RoomID, *body.Index, body.Username)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeRoom(w, room)
}

func (s *Server) handleRoomState(w http.ResponseWriter, r *http.Request) {
	roomID := strings.TrimSpace(r.URL.Query().Get("roomId"))
	room, err := s.rooms.State(r.Context(), roomID)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeRoom(w, room)
}
