package server

import (
	"errors"
	"net"
)

// ErrTableFull indicates every slot in the session table is active. The
// caller must close the new connection without a handshake.
var ErrTableFull = errors.New("session table full")

// SessionTable is the fixed-capacity registry of active connections. It is
// only ever touched from the dispatch goroutine, so it carries no locks; a
// multi-threaded redesign would need to add them.
type SessionTable struct {
	sessions []Session
}

// NewSessionTable returns a table with the given fixed capacity.
func NewSessionTable(capacity int) *SessionTable {
	table := &SessionTable{sessions: make([]Session, capacity)}
	for i := range table.sessions {
		table.sessions[i].slot = i
	}
	return table
}

// Capacity returns the fixed number of slots.
func (t *SessionTable) Capacity() int {
	return len(t.sessions)
}

// Acquire claims a free slot for conn and returns the session occupying it.
func (t *SessionTable) Acquire(conn net.Conn) (*Session, error) {
	for i := range t.sessions {
		if t.sessions[i].active {
			continue
		}
		s := &t.sessions[i]
		s.conn = conn
		s.active = true
		s.userID = 0
		s.decoder.Reset()
		return s, nil
	}
	return nil, ErrTableFull
}

// Lookup returns the active session at slot, or nil if slot is out of range
// or free.
func (t *SessionTable) Lookup(slot int) *Session {
	if slot < 0 || slot >= len(t.sessions) {
		return nil
	}
	if !t.sessions[slot].active {
		return nil
	}
	return &t.sessions[slot]
}

// Authenticate marks the session at slot as belonging to userID.
func (t *SessionTable) Authenticate(slot int, userID int64) {
	if s := t.Lookup(slot); s != nil {
		s.userID = userID
	}
}

// Release frees the slot and closes its socket. Releasing an inactive slot
// is a no-op.
func (t *SessionTable) Release(slot int) {
	s := t.Lookup(slot)
	if s == nil {
		return
	}
	_ = s.conn.Close()
	s.conn = nil
	s.active = false
	s.userID = 0
	s.decoder.Reset()
}

// ActiveCount returns the number of occupied slots.
func (t *SessionTable) ActiveCount() int {
	count := 0
	for i := range t.sessions {
		if t.sessions[i].active {
			count++
		}
	}
	return count
}

// ForEachActive calls fn for every active session.
func (t *SessionTable) ForEachActive(fn func(*Session)) {
	for i := range t.sessions {
		if t.sessions[i].active {
			fn(&t.sessions[i])
		}
	}
}
