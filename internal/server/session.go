package server

import (
	"net"

	"github.com/drawguess/server/internal/protocol"
)

// Session is one slot in the connection table: a client's live socket, its
// authentication state, and the accumulator for partially received frames.
// Sessions are owned exclusively by the table; the conn and active flag are
// always set and cleared together.
type Session struct {
	conn    net.Conn
	slot    int
	active  bool
	userID  int64
	decoder protocol.Decoder
}

// Slot returns the session's index in the table.
func (s *Session) Slot() int {
	return s.slot
}

// UserID returns the authenticated user id, or 0 if unauthenticated.
func (s *Session) UserID() int64 {
	return s.userID
}

// Authenticated reports whether a login or register succeeded on this
// session.
func (s *Session) Authenticated() bool {
	return s.active && s.userID > 0
}

// RemoteAddr returns the peer address for logging, or "-" if the slot is
// free.
func (s *Session) RemoteAddr() string {
	if s.conn == nil {
		return "-"
	}
	return s.conn.RemoteAddr().String()
}
