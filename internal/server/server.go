// Package server implements the connection runtime: the accept loop, the
// fixed-capacity session table, and the single dispatch goroutine that owns
// all shared state.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/drawguess/server/internal/core"
	"github.com/drawguess/server/internal/data"
	"github.com/drawguess/server/internal/protocol"
)

// Store is the narrow persistence surface available to the protocol
// handlers. *data.DB satisfies it; tests substitute doubles.
type Store interface {
	Authenticate(username, passwordHash string) (int64, error)
	Register(username, passwordHash string) (int64, error)
	GameHistory(userID int64, limit int) ([]data.HistoryEntry, error)
}

type eventKind int

const (
	eventConnect eventKind = iota
	eventData
	eventClose
)

// event is one unit of work for the dispatch goroutine. The conn field lets
// the dispatcher discard events from a slot that has since been released and
// reacquired by a different connection.
type event struct {
	kind eventKind
	conn net.Conn
	slot int
	data []byte
}

const historyCacheTTL = 30 * time.Second

// Server multiplexes every client connection onto one dispatch goroutine.
// The session table, the history cache, and the Store are only ever touched
// from that goroutine; reader goroutines own nothing but their socket and
// the event channel.
type Server struct {
	config *core.Config
	log    *logrus.Logger
	store  Store

	table    *SessionTable
	events   chan event
	listener net.Listener
	history  *cache.Cache
	done     chan struct{}
}

func New(cfg *core.Config, logger *logrus.Logger, store Store) *Server {
	return &Server{
		config:  cfg,
		log:     logger,
		store:   store,
		table:   NewSessionTable(cfg.MaxConnections),
		events:  make(chan event, 64),
		history: cache.New(historyCacheTTL, 2*historyCacheTTL),
		done:    make(chan struct{}),
	}
}

// Start opens the listening socket and spins off the accept loop and the
// dispatch goroutine. It returns once the server is accepting connections;
// cancelling ctx begins shutdown, and Done is closed when it completes.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.ListenAddress())
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.config.ListenAddress(), err)
	}
	s.listener = listener

	go s.acceptLoop()
	go s.dispatch(ctx)

	return nil
}

// Addr returns the listener's address. Only valid after Start.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Done is closed once shutdown has released every session.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Listener closed during shutdown.
			return
		}
		s.emit(event{kind: eventConnect, conn: conn})
	}
}

// readLoop pulls raw bytes off one connection and forwards them to the
// dispatcher. It holds no session state.
func (s *Server) readLoop(conn net.Conn, slot int) {
	buffer := make([]byte, protocol.BufferSize)
	for {
		n, err := conn.Read(buffer)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buffer[:n])
			s.emit(event{kind: eventData, conn: conn, slot: slot, data: chunk})
		}
		if err != nil {
			s.emit(event{kind: eventClose, conn: conn, slot: slot})
			return
		}
	}
}

// emit delivers an event to the dispatcher unless shutdown has completed.
func (s *Server) emit(ev event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Server) dispatch(ctx context.Context) {
	defer close(s.done)

	s.log.Infof("waiting for connections on %v", s.listener.Addr())

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return
		case ev := <-s.events:
			s.handleEvent(ev)
		}
	}
}

func (s *Server) handleEvent(ev event) {
	switch ev.kind {
	case eventConnect:
		sess, err := s.table.Acquire(ev.conn)
		if err != nil {
			s.log.Warnf("rejecting connection from %s: %v", ev.conn.RemoteAddr(), err)
			_ = ev.conn.Close()
			return
		}
		s.log.Infof("accepted connection from %s (slot %d)", sess.RemoteAddr(), sess.Slot())
		go s.readLoop(ev.conn, sess.Slot())

	case eventData:
		sess := s.table.Lookup(ev.slot)
		if sess == nil || sess.conn != ev.conn {
			// Stale event from a slot released since the read.
			return
		}

		sess.decoder.Feed(ev.data)
		for {
			frame, err := sess.decoder.Next()
			if err != nil {
				s.log.Warnf("closing protocol-violating client %s (slot %d): %v",
					sess.RemoteAddr(), sess.Slot(), err)
				s.table.Release(sess.Slot())
				return
			}
			if frame == nil {
				return
			}
			s.handleFrame(sess, frame)
			if !sess.active || sess.conn != ev.conn {
				// The handler closed the session.
				return
			}
		}

	case eventClose:
		sess := s.table.Lookup(ev.slot)
		if sess == nil || sess.conn != ev.conn {
			return
		}
		s.log.Infof("disconnected client %s (slot %d)", sess.RemoteAddr(), sess.Slot())
		s.table.Release(ev.slot)
	}
}

func (s *Server) shutdown() {
	_ = s.listener.Close()
	s.table.ForEachActive(func(sess *Session) {
		s.table.Release(sess.Slot())
	})
	s.log.Info("server shut down")
}
