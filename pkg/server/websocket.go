package server

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/luma-dev/luma/pkg/protocol"
)

// handleLive upgrades the request and runs the session event loop until the
// client disconnects.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		return
	}

	id := fmt.Sprintf("s%d", atomic.AddUint64(&s.nextID, 1))
	sess := newSession(id, s, conn)
	s.register(sess)
	defer func() {
		s.unregister(sess)
		sess.Close()
	}()

	s.logger.Info("session connected", "session", id, "remote", r.RemoteAddr)

	// Hello reply carries the session ID, then the mount patches follow so
	// the client can build the initial live tree.
	hello := protocol.NewFrame(protocol.FrameHello, []byte(id))
	if err := sess.writeFrame(hello); err != nil {
		s.metrics.wsErrors.WithLabelValues("write").Inc()
		return
	}
	if err := sess.sendPatches(sess.InitialPatches()); err != nil {
		s.metrics.wsErrors.WithLabelValues("write").Inc()
		return
	}

	// Keepalive pings at 90% of the read wait.
	stopPing := make(chan struct{})
	defer close(stopPing)
	go s.pingLoop(sess, stopPing)

	s.readLoop(r, sess)
	s.logger.Info("session disconnected", "session", id)
}

// readLoop processes incoming frames until the connection drops.
func (s *Server) readLoop(r *http.Request, sess *Session) {
	conn := sess.conn
	resetDeadline := func() {
		_ = conn.SetReadDeadline(time.Now().Add(s.config.ReadWait))
	}
	resetDeadline()
	conn.SetPongHandler(func(string) error {
		resetDeadline()
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "session", sess.ID(), "error", err)
				s.metrics.wsErrors.WithLabelValues("read").Inc()
			}
			return
		}
		resetDeadline()
		if msgType != websocket.BinaryMessage {
			continue
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			s.metrics.wsErrors.WithLabelValues("decode").Inc()
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.dispatchEvent(r, sess, frame)
		case protocol.FrameHello:
			// Client re-hello is ignored once the session is live.
		default:
			s.metrics.wsErrors.WithLabelValues("frame_type").Inc()
		}
	}
}

// dispatchEvent decodes and handles one Event frame, replying with patches
// or an Error frame.
func (s *Server) dispatchEvent(r *http.Request, sess *Session, frame *protocol.Frame) {
	ev, err := protocol.DecodeEvent(frame.Payload)
	if err != nil {
		s.metrics.wsErrors.WithLabelValues("decode").Inc()
		return
	}

	start := time.Now()
	muts, err := sess.HandleEvent(r.Context(), ev)
	s.metrics.eventDuration.WithLabelValues(ev.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.eventsTotal.WithLabelValues(ev.Name, "error").Inc()
		s.logger.Warn("event failed", "session", sess.ID(), "event", ev.Name, "error", err)
		if werr := sess.writeFrame(protocol.EncodeError(err.Error())); werr != nil {
			s.metrics.wsErrors.WithLabelValues("write").Inc()
		}
		return
	}

	s.metrics.eventsTotal.WithLabelValues(ev.Name, "success").Inc()
	if err := sess.sendPatches(muts); err != nil {
		s.metrics.wsErrors.WithLabelValues("write").Inc()
	}
}

// pingLoop sends pings until the session ends.
func (s *Server) pingLoop(sess *Session, stop <-chan struct{}) {
	interval := s.config.ReadWait * 9 / 10
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sess.mu.Lock()
			closed := sess.closed
			if !closed {
				_ = sess.conn.SetWriteDeadline(time.Now().Add(s.config.WriteWait))
				if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					sess.mu.Unlock()
					return
				}
			}
			sess.mu.Unlock()
			if closed {
				return
			}
		}
	}
}
