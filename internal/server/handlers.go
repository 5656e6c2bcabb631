package server

import (
	"strconv"

	"github.com/patrickmn/go-cache"

	"github.com/drawguess/server/internal/core/debug"
	"github.com/drawguess/server/internal/protocol"
)

// historyQueryLimit caps the number of rows fetched per history request.
const historyQueryLimit = 100

func (s *Server) handleFrame(sess *Session, frame *protocol.Frame) {
	if s.config.Debugging.PacketLoggingEnabled {
		debug.PrintFrame(s.log, "recv", uint8(frame.Type), frame.Payload)
	}

	switch frame.Type {
	case protocol.TypeLogin:
		s.handleAuth(sess, frame.Payload, false)
	case protocol.TypeRegister:
		s.handleAuth(sess, frame.Payload, true)
	case protocol.TypeGetGameHistory:
		s.handleGetGameHistory(sess)
	case protocol.TypeStroke, protocol.TypeGuess, protocol.TypeAnnounce:
		s.relay(sess, frame)
	default:
		s.log.Infof("received unknown message %#02x from %s", byte(frame.Type), sess.RemoteAddr())
	}
}

func (s *Server) handleAuth(sess *Session, payload []byte, register bool) {
	var creds protocol.Credentials
	if err := creds.UnmarshalPayload(payload); err != nil {
		s.log.Warnf("malformed credentials from %s: %v", sess.RemoteAddr(), err)
		s.table.Release(sess.Slot())
		return
	}

	var userID int64
	var err error
	if register {
		userID, err = s.store.Register(creds.Username, creds.PasswordHash)
	} else {
		userID, err = s.store.Authenticate(creds.Username, creds.PasswordHash)
	}
	if err != nil {
		s.log.Warnf("auth failed for %q from %s: %v", creds.Username, sess.RemoteAddr(), err)
		s.send(sess, protocol.TypeAuthResponse, &protocol.AuthResponse{Status: protocol.AuthStatusDenied})
		return
	}

	s.table.Authenticate(sess.Slot(), userID)
	s.log.Infof("user %q authenticated as id %d (slot %d)", creds.Username, userID, sess.Slot())
	s.send(sess, protocol.TypeAuthResponse, &protocol.AuthResponse{
		Status: protocol.AuthStatusOK,
		UserID: int32(userID),
	})
}

// handleGetGameHistory answers with the user's completed rounds. Requests
// from unauthenticated sessions never reach the store; they get an empty
// response. Storage failures degrade to an empty response as well.
func (s *Server) handleGetGameHistory(sess *Session) {
	resp := &protocol.GameHistoryResponse{}
	if !sess.Authenticated() {
		s.log.Warnf("history request from unauthenticated client %s (slot %d)",
			sess.RemoteAddr(), sess.Slot())
		s.send(sess, protocol.TypeGameHistoryResponse, resp)
		return
	}

	resp.Entries = s.historyFor(sess.UserID())
	s.send(sess, protocol.TypeGameHistoryResponse, resp)
}

func (s *Server) historyFor(userID int64) []protocol.GameHistoryEntry {
	key := strconv.FormatInt(userID, 10)
	if cached, ok := s.history.Get(key); ok {
		return cached.([]protocol.GameHistoryEntry)
	}

	rows, err := s.store.GameHistory(userID, historyQueryLimit)
	if err != nil {
		s.log.Warnf("could not fetch history for user %d: %v", userID, err)
		return nil
	}

	entries := make([]protocol.GameHistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = protocol.GameHistoryEntry{
			Score:      row.Score,
			Rank:       row.Rank,
			FinishedAt: row.FinishedAt,
		}
	}
	s.history.Set(key, entries, cache.DefaultExpiration)
	return entries
}

// relay forwards stroke/guess/announce frames to every other authenticated
// session without interpreting them.
func (s *Server) relay(sess *Session, frame *protocol.Frame) {
	if !sess.Authenticated() {
		s.log.Debugf("dropping %#02x from unauthenticated client %s", byte(frame.Type), sess.RemoteAddr())
		return
	}

	s.table.ForEachActive(func(other *Session) {
		if other.Slot() == sess.Slot() || !other.Authenticated() {
			return
		}
		s.sendRaw(other, frame.Type, frame.Payload)
	})
}

type payloadMarshaler interface {
	MarshalPayload() ([]byte, error)
}

func (s *Server) send(sess *Session, t protocol.MessageType, msg payloadMarshaler) {
	payload, err := msg.MarshalPayload()
	if err != nil {
		s.log.Errorf("could not encode %#02x response: %v", byte(t), err)
		return
	}
	s.sendRaw(sess, t, payload)
}

func (s *Server) sendRaw(sess *Session, t protocol.MessageType, payload []byte) {
	frame, err := protocol.EncodeFrame(t, payload)
	if err != nil {
		s.log.Errorf("could not frame %#02x response: %v", byte(t), err)
		return
	}

	if s.config.Debugging.PacketLoggingEnabled {
		debug.PrintFrame(s.log, "send", uint8(t), payload)
	}

	if err := s.transmit(sess, frame); err != nil {
		s.log.Warnf("failed to send to client %s: %v", sess.RemoteAddr(), err)
		s.table.Release(sess.Slot())
	}
}

// transmit writes data to the session's socket until all of it is sent.
func (s *Server) transmit(sess *Session, data []byte) error {
	sent := 0
	for sent < len(data) {
		n, err := sess.conn.Write(data[sent:])
		if err != nil {
			return err
		}
		sent += n
	}
	return nil
}
