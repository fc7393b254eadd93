package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/luma-dev/luma/pkg/dom"
	"github.com/luma-dev/luma/pkg/protocol"
	"github.com/luma-dev/luma/pkg/reconcile"
	"github.com/luma-dev/luma/pkg/vdom"
)

// Session errors.
var (
	ErrUnknownTarget = errors.New("server: event targets unknown node")
	ErrNoListener    = errors.New("server: no listener for event")
	ErrSessionClosed = errors.New("server: session closed")
)

// Session is one connected client: a live document, a reconciler, and the
// mounted root component tree. Events are dispatched on the session's own
// goroutine, so handlers never race against each other.
type Session struct {
	id      string
	server  *Server
	conn    *websocket.Conn
	doc     *dom.Document
	rec     *reconcile.Reconciler
	current *vdom.VNode

	mu     sync.Mutex
	closed bool

	logger *slog.Logger
	tracer trace.Tracer
}

// newSession creates a session and mounts the server's root component into a
// fresh live document.
func newSession(id string, srv *Server, conn *websocket.Conn) *Session {
	doc := dom.NewDocument()
	s := &Session{
		id:     id,
		server: srv,
		conn:   conn,
		doc:    doc,
		rec:    reconcile.New(doc),
		logger: srv.logger.With("session", id),
		tracer: srv.tracer,
	}

	s.current = vdom.Comp(srv.root, srv.props)
	s.rec.Mount(s.current)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Document returns the session's live document.
func (s *Session) Document() *dom.Document { return s.doc }

// HandleEvent dispatches one client event and returns the resulting
// live-tree mutations.
func (s *Session) HandleEvent(ctx context.Context, ev protocol.Event) ([]dom.Mutation, error) {
	ctx, span := s.tracer.Start(ctx, "session.HandleEvent",
		trace.WithAttributes(
			attribute.String("luma.session", s.id),
			attribute.String("luma.event", ev.Name),
			attribute.String("luma.target", ev.Target),
		))
	defer span.End()
	_ = ctx

	node := s.doc.Lookup(ev.Target)
	if node == nil {
		span.SetStatus(codes.Error, "unknown target")
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, ev.Target)
	}

	handler := node.Listener("on" + ev.Name)
	if handler == nil {
		handler = node.Listener(ev.Name)
	}
	if handler == nil {
		span.SetStatus(codes.Error, "no listener")
		return nil, fmt.Errorf("%w: %q on %q", ErrNoListener, ev.Name, ev.Target)
	}

	if err := invoke(handler, ev.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.rerender()
	return s.doc.Flush(), nil
}

// invoke calls an event handler. Handlers may take no arguments or the
// event's value.
func invoke(handler any, value string) error {
	switch h := handler.(type) {
	case func():
		h()
		return nil
	case func(string):
		h(value)
		return nil
	case func() error:
		return h()
	case func(string) error:
		return h(value)
	default:
		return fmt.Errorf("server: unsupported handler type %T", handler)
	}
}

// rerender diffs the root component against a fresh expansion.
func (s *Session) rerender() {
	next := vdom.Comp(s.server.root, s.server.props)
	s.rec.Update(s.current, next)
	s.current = next
}

// InitialPatches drains the mutations produced by mounting the root tree.
func (s *Session) InitialPatches() []dom.Mutation {
	return s.doc.Flush()
}

// sendPatches encodes mutations into a Patches frame and writes it.
func (s *Session) sendPatches(muts []dom.Mutation) error {
	frame, err := protocol.EncodePatches(muts)
	if err != nil {
		return err
	}
	if err := s.writeFrame(frame); err != nil {
		return err
	}
	s.server.metrics.patchesSent.Add(float64(len(muts)))
	s.server.metrics.patchBytes.Add(float64(len(frame.Payload)))
	return nil
}

// writeFrame writes one frame as a binary WebSocket message.
func (s *Session) writeFrame(frame *protocol.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	deadline := time.Now().Add(s.server.config.WriteWait)
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
}

// Close tears down the connection. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	if s.conn != nil {
		_ = s.conn.Close()
	}
}
