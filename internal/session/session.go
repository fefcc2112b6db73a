// Package session is the single entry point every front end uses to submit
// instructions against the shared map view.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sant0-9/divimap/internal/geo"
	"github.com/sant0-9/divimap/internal/intent"
	"github.com/sant0-9/divimap/internal/logger"
	"github.com/sant0-9/divimap/internal/mapview"
	"github.com/sant0-9/divimap/internal/metrics"
)

// ErrBusy is returned when an instruction arrives while another is still in
// flight. The new instruction is dropped, not queued.
var ErrBusy = errors.New("an instruction is already being processed")

// Interpreter turns an instruction into an intent.
type Interpreter interface {
	Interpret(ctx context.Context, instruction string) (intent.Intent, error)
}

// Outcome describes a successfully applied instruction.
type Outcome struct {
	ID          string          `json:"id"`
	Instruction string          `json:"instruction"`
	Intent      intent.Intent   `json:"-"`
	Summary     mapview.Summary `json:"summary"`
	Status      Status          `json:"status"`
	State       mapview.State   `json:"-"`
	Elapsed     time.Duration   `json:"-"`
}

type Session struct {
	interp  Interpreter
	applier *mapview.Applicator
	log     *zerolog.Logger

	mu     sync.Mutex
	busy   bool
	state  mapview.State
	last   *mapview.Summary
	status Status
}

type Option func(*Session)

func WithLogger(l *zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New starts a session on the initial view of the applicator's collection.
func New(interp Interpreter, applier *mapview.Applicator, opts ...Option) *Session {
	s := &Session{
		interp:  interp,
		applier: applier,
		state:   applier.Initial(),
		status:  StatusReady,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit interprets instruction and applies it to the current view. On any
// error the view is left as it was.
func (s *Session) Submit(ctx context.Context, instruction string) (*Outcome, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		s.setStatus(StatusNoInput)
		metrics.ObserveInstruction(ErrorKind(intent.ErrEmptyInstruction))
		return nil, intent.ErrEmptyInstruction
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		metrics.ObserveInstruction(ErrorKind(ErrBusy))
		return nil, ErrBusy
	}
	s.busy = true
	s.status = StatusWorking
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	id := logger.InstructionID(ctx)
	if id == "" {
		ctx = logger.WithInstructionID(ctx, "")
		id = logger.InstructionID(ctx)
	}
	log := logger.FromContext(ctx, s.log)
	start := time.Now()

	it, err := s.interp.Interpret(ctx, instruction)
	if err != nil {
		return nil, s.fail(log, err)
	}

	s.mu.Lock()
	next, res, err := s.applier.Apply(it, s.state)
	if err != nil {
		s.mu.Unlock()
		return nil, s.fail(log, err)
	}
	s.state = next
	summary := res.Summary
	s.last = &summary

	status := StatusCentered
	if it.Kind() == intent.KindFilter {
		status = StatusSelected(summary.Count)
		metrics.ObserveMatched(summary.Count)
	}
	s.status = status
	s.mu.Unlock()

	metrics.ObserveInstruction(string(it.Kind()))
	elapsed := time.Since(start)
	log.Info().
		Str("tipo", string(it.Kind())).
		Int("count", summary.Count).
		Dur("elapsed", elapsed).
		Msg("instruction applied")

	return &Outcome{
		ID:          id,
		Instruction: instruction,
		Intent:      it,
		Summary:     summary,
		Status:      status,
		State:       next,
		Elapsed:     elapsed,
	}, nil
}

func (s *Session) fail(log *zerolog.Logger, err error) error {
	kind := ErrorKind(err)
	metrics.ObserveInstruction(kind)

	ev := log.Warn().Err(err).Str("kind", kind)
	var pe *intent.ParseError
	if errors.As(err, &pe) {
		ev = ev.Str("raw", pe.RawText).Str("cleaned", pe.CleanedText)
	}
	ev.Msg("instruction failed")

	s.setStatus(StatusFor(err))
	return err
}

// Clear drops the selection and redraws the whole layer.
func (s *Session) Clear() mapview.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.applier.Clear(s.state)
	s.last = nil
	s.status = StatusCleared
	return s.state
}

// State returns a snapshot of the current view.
func (s *Session) State() mapview.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Overlay = append([]*geo.Feature(nil), s.state.Overlay...)
	if s.state.Selection != nil {
		st.Selection = append([]*geo.Feature{}, s.state.Selection...)
	}
	return st
}

// Last returns the summary of the last applied instruction, if any.
func (s *Session) Last() (mapview.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return mapview.Summary{}, false
	}
	return *s.last, true
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Busy reports whether an instruction is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}
