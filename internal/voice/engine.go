package voice

import (
	"context"
	"sync"
)

// Fragment is one piece of transcript. Interim fragments may be revised,
// final ones never change.
type Fragment struct {
	Text  string
	Final bool
}

// Engine is a speech-to-text source. Listen starts delivering fragments to
// emit and returns at once; it fails when capture cannot begin. Fragments
// stop after ctx is done or Close is called.
type Engine interface {
	Listen(ctx context.Context, emit func(Fragment)) error
	Close() error
}

// Pusher is implemented by engines fed from outside the process.
type Pusher interface {
	Push(f Fragment) error
}

// Unavailable is the engine for hosts without speech recognition.
type Unavailable struct{}

func (Unavailable) Listen(context.Context, func(Fragment)) error { return ErrUnsupported }
func (Unavailable) Close() error                                 { return nil }

// Stream is fed by a remote recognizer, such as a browser posting its
// results. It is safe for concurrent use.
type Stream struct {
	mu     sync.Mutex
	emit   func(Fragment)
	denied bool
	stop   chan struct{}
}

// NewStream creates an idle Stream.
func NewStream() *Stream {
	return &Stream{}
}

// Listen implements Engine.
func (s *Stream) Listen(ctx context.Context, emit func(Fragment)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.denied {
		return ErrPermissionDenied
	}
	if s.stop != nil {
		close(s.stop)
	}
	stop := make(chan struct{})
	s.emit = emit
	s.stop = stop

	go func() {
		select {
		case <-ctx.Done():
			s.detach(stop)
		case <-stop:
		}
	}()
	return nil
}

// Push delivers a fragment to the current listener.
func (s *Stream) Push(f Fragment) error {
	s.mu.Lock()
	emit := s.emit
	s.mu.Unlock()

	if emit == nil {
		return ErrNotListening
	}
	emit(f)
	return nil
}

// Deny records that the microphone was refused. Listening stops and later
// Listen calls fail with ErrPermissionDenied.
func (s *Stream) Deny() {
	s.mu.Lock()
	s.denied = true
	s.mu.Unlock()
	s.Close()
}

// Close implements Engine.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.emit = nil
	return nil
}

func (s *Stream) detach(stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == stop {
		s.stop = nil
		s.emit = nil
	}
}
