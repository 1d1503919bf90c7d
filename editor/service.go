package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// HandoffTimeout is how long Send waits for the loop to take an input
// before replacing the one still pending.
const HandoffTimeout = 16 * time.Millisecond

var (
	ErrStopped = errors.New("editor service is not running")
	ErrRunning = errors.New("editor service already running")
)

// Painter is called on the service goroutine after every applied input or
// command. It may read the editor freely but must not retain it.
type Painter func(ed *Editor)

type command struct {
	fn   func(*Editor) error
	done chan error
}

// Service owns an Editor on a single goroutine. Pointer inputs go through a
// one-slot mailbox where a newer input replaces an unconsumed one; commands
// sent with Exec are never dropped.
type Service struct {
	ed      *Editor
	paint   Painter
	inputs  chan Input
	cmds    chan command
	handoff time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	group   *errgroup.Group
	stopped chan struct{}
}

// NewService wraps ed. paint may be nil.
func NewService(ed *Editor, paint Painter) *Service {
	if paint == nil {
		paint = func(*Editor) {}
	}
	return &Service{
		ed:      ed,
		paint:   paint,
		inputs:  make(chan Input, 1),
		cmds:    make(chan command),
		handoff: HandoffTimeout,
	}
}

// Start launches the loop. It runs until ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	stopped := make(chan struct{})
	g.Go(func() error {
		defer close(stopped)
		return s.run(gctx)
	})

	s.cancel = cancel
	s.group = g
	s.stopped = stopped
	Logger().Debug("editor service started")
	return nil
}

// Stop cancels the loop and waits for it to exit. Calling Stop on a
// service that is not running does nothing.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group == nil {
		return nil
	}
	s.cancel()
	err := s.group.Wait()
	s.group = nil
	s.cancel = nil
	Logger().Debug("editor service stopped")
	return err
}

// Running reports whether the loop is active.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group == nil {
		return false
	}
	select {
	case <-s.stopped:
		return false
	default:
		return true
	}
}

// Send hands an input to the loop. If the slot is still occupied after the
// handoff timeout the pending input is discarded in favour of in.
func (s *Service) Send(in Input) {
	select {
	case s.inputs <- in:
		return
	default:
	}

	t := time.NewTimer(s.handoff)
	defer t.Stop()
	select {
	case s.inputs <- in:
		return
	case <-t.C:
	}

	select {
	case old := <-s.inputs:
		Logger().Debug("dropped input", "action", old.Action)
	default:
	}
	select {
	case s.inputs <- in:
	default:
		Logger().Debug("dropped input", "action", in.Action)
	}
}

// Exec runs fn on the service goroutine and returns its error.
func (s *Service) Exec(ctx context.Context, fn func(*Editor) error) error {
	s.mu.Lock()
	stopped := s.stopped
	running := s.group != nil
	s.mu.Unlock()
	if !running {
		return ErrStopped
	}

	c := command{fn: fn, done: make(chan error, 1)}
	select {
	case s.cmds <- c:
	case <-stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-c.done:
		return err
	case <-stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) run(ctx context.Context) error {
	s.paint(s.ed)
	for {
		select {
		case <-ctx.Done():
			return nil
		case in := <-s.inputs:
			if err := s.ed.Handle(in); err != nil {
				Logger().Warn("input failed", "action", in.Action, "err", err)
			}
		case c := <-s.cmds:
			c.done <- c.fn(s.ed)
		}
		s.paint(s.ed)
	}
}
