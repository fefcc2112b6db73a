package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/divimap/internal/geo"
	"github.com/sant0-9/divimap/internal/intent"
	"github.com/sant0-9/divimap/internal/logger"
	"github.com/sant0-9/divimap/internal/mapview"
)

type fakeInterpreter struct {
	mu      sync.Mutex
	intent  intent.Intent
	err     error
	calls   []string
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeInterpreter) Interpret(_ context.Context, instruction string) (intent.Intent, error) {
	f.mu.Lock()
	f.calls = append(f.calls, instruction)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.intent, f.err
}

func newSession(f *fakeInterpreter) *Session {
	return New(f, mapview.NewApplicator(geo.Sample()))
}

func antioquia() intent.FilterIntent {
	return intent.FilterIntent{Filters: []intent.Filter{{Field: geo.FieldDeptName, Value: "ANTIOQUIA"}}}
}

func TestSubmitFilter(t *testing.T) {
	f := &fakeInterpreter{intent: antioquia()}
	s := newSession(f)

	out, err := s.Submit(context.Background(), "  municipios de antioquia ")
	require.NoError(t, err)

	assert.Equal(t, []string{"municipios de antioquia"}, f.calls)
	assert.Equal(t, 3, out.Summary.Count)
	assert.Equal(t, Status{StatusSuccess, "3 elementos seleccionados"}, out.Status)
	assert.Equal(t, out.Status, s.Status())
	assert.NotEmpty(t, out.ID)
	assert.Len(t, s.State().Overlay, 3)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, out.Summary, last)
}

func TestSubmitKeepsCallerInstructionID(t *testing.T) {
	s := newSession(&fakeInterpreter{intent: antioquia()})
	ctx := logger.WithInstructionID(context.Background(), "req-1")

	out, err := s.Submit(ctx, "antioquia")
	require.NoError(t, err)
	assert.Equal(t, "req-1", out.ID)
}

func TestSubmitCoordinate(t *testing.T) {
	s := newSession(&fakeInterpreter{intent: intent.CoordinateIntent{X: -74.05, Y: 4.65, EPSG: 4326}})

	out, err := s.Submit(context.Background(), "centra el mapa en 4.65, -74.05")
	require.NoError(t, err)
	assert.Equal(t, StatusCentered, out.Status)
	assert.Equal(t, geo.LatLon{Lat: 4.65, Lon: -74.05}, s.State().Center)
	assert.Equal(t, mapview.DefaultZoom, s.State().Zoom)
}

func TestSubmitEmptyNeverCallsInterpreter(t *testing.T) {
	f := &fakeInterpreter{intent: antioquia()}
	s := newSession(f)

	_, err := s.Submit(context.Background(), "   ")
	assert.ErrorIs(t, err, intent.ErrEmptyInstruction)
	assert.Empty(t, f.calls)
	assert.Equal(t, StatusNoInput, s.Status())
}

func TestSubmitFailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		f    *fakeInterpreter
	}{
		{"transport", &fakeInterpreter{err: &intent.TransportError{Reason: "timeout"}}},
		{"parse", &fakeInterpreter{err: &intent.ParseError{RawText: "Lo siento", Err: errors.New("bad")}}},
		{"unsupported reference", &fakeInterpreter{intent: intent.CoordinateIntent{X: 1e6, Y: 1e6, EPSG: 3116}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := &fakeInterpreter{intent: antioquia()}
			s := newSession(ok)
			_, err := s.Submit(context.Background(), "antioquia")
			require.NoError(t, err)
			before := s.State()

			s.interp = tt.f
			out, err := s.Submit(context.Background(), "otra cosa")
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, before, s.State())
			assert.Equal(t, StatusError, s.Status().Kind)
		})
	}
}

func TestSubmitDropsWhileBusy(t *testing.T) {
	f := &fakeInterpreter{
		intent:  antioquia(),
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s := newSession(f)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "primera")
		done <- err
	}()

	select {
	case <-f.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the interpreter")
	}
	assert.True(t, s.Busy())
	assert.Equal(t, StatusWorking, s.Status())

	_, err := s.Submit(context.Background(), "segunda")
	assert.ErrorIs(t, err, ErrBusy)

	close(f.block)
	require.NoError(t, <-done)
	assert.False(t, s.Busy())

	f.mu.Lock()
	assert.Equal(t, []string{"primera"}, f.calls)
	f.mu.Unlock()
}

func TestClear(t *testing.T) {
	s := newSession(&fakeInterpreter{intent: antioquia()})
	_, err := s.Submit(context.Background(), "antioquia")
	require.NoError(t, err)

	st := s.Clear()
	assert.Nil(t, st.Selection)
	assert.Len(t, st.Overlay, 8)
	assert.Equal(t, StatusCleared, s.Status())
	_, ok := s.Last()
	assert.False(t, ok)
}

func TestStateIsASnapshot(t *testing.T) {
	s := newSession(&fakeInterpreter{intent: antioquia()})
	st := s.State()
	st.Overlay[0] = nil
	assert.NotNil(t, s.State().Overlay[0])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
		want string
	}{
		{"empty", intent.ErrEmptyInstruction, "empty_instruction", "Por favor ingrese una instrucción"},
		{"busy", ErrBusy, "busy", "Ya hay una instrucción en proceso"},
		{"timeout", &intent.TransportError{Reason: "timeout"}, "timeout", "tardó demasiado"},
		{"status", &intent.TransportError{Status: 401}, "transport_error", "401"},
		{"network", &intent.TransportError{Reason: "connection refused"}, "transport_error", "no se pudo contactar"},
		{"empty response", &intent.EmptyResponseError{}, "empty_response", "respuesta vacía"},
		{"parse", &intent.ParseError{Err: errors.New("x")}, "parse_error", "JSON"},
		{"schema", &intent.SchemaError{Reason: "x"}, "schema_error", "formato inesperado"},
		{"reference", &mapview.UnsupportedReferenceError{EPSG: 3116}, "unsupported_reference", "EPSG:3116"},
		{"other", errors.New("boom"), "error", "Error al procesar instrucción"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := StatusFor(tt.err)
			assert.Contains(t, st.Message, tt.want)
			assert.Equal(t, tt.kind, ErrorKind(tt.err))
		})
	}
}
