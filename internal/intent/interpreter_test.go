package intent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/divimap/internal/llm"
)

type fakeProvider struct {
	reply *llm.CompletionResponse
	err   error
	calls []*llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

func (f *fakeProvider) Ping(context.Context) error { return nil }

func replying(content string) *fakeProvider {
	return &fakeProvider{reply: &llm.CompletionResponse{Content: content, Raw: []byte(`{"choices":[]}`)}}
}

func TestInterpretBuildsRequest(t *testing.T) {
	p := replying(`{"tipo":"filtro","filtros":[]}`)
	_, err := NewInterpreter(p, "some/model").Interpret(context.Background(), "  municipios de antioquia  ")
	require.NoError(t, err)

	require.Len(t, p.calls, 1)
	req := p.calls[0]
	assert.Equal(t, "some/model", req.Model)
	assert.Equal(t, 200, req.MaxTokens)
	assert.InDelta(t, 0.1, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.Message{Role: "system", Content: "Devuelve solo JSON válido."}, req.Messages[0])

	prompt := req.Messages[1].Content
	assert.True(t, strings.HasSuffix(prompt, "Instrucción: municipios de antioquia"))
	for _, field := range []string{"DPTO_CCDGO", "MPIO_CCDGO", "DEPTO", "MPIO_CNMBR"} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, `"tipo": "filtro"`)
	assert.Contains(t, prompt, `"tipo": "coordenada"`)
	assert.Contains(t, prompt, "negativa")
	assert.Contains(t, prompt, "MAYÚSCULAS")
}

func TestInterpretScenarios(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		reply       string
		want        Intent
	}{
		{
			name:        "department filter",
			instruction: "municipios del departamento ANTIOQUIA",
			reply:       `{"tipo":"filtro","filtros":[{"campo":"DEPTO","valor":"ANTIOQUIA"}]}`,
			want:        FilterIntent{Filters: []Filter{{Field: "DEPTO", Value: "ANTIOQUIA"}}},
		},
		{
			name:        "center on coordinate",
			instruction: "centra el mapa en 4.65, -74.05",
			reply:       `{"tipo":"coordenada","x":-74.05,"y":4.65,"epsg":4326}`,
			want:        CoordinateIntent{X: -74.05, Y: 4.65, EPSG: 4326},
		},
		{
			name:        "fenced reply",
			instruction: "centra el mapa en 4,65 -74,05",
			reply:       "```json\n{\"tipo\":\"coordenada\",\"x\":-74.05,\"y\":4.65,\"epsg\":4326}\n```",
			want:        CoordinateIntent{X: -74.05, Y: 4.65, EPSG: 4326},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInterpreter(replying(tt.reply), "").Interpret(context.Background(), tt.instruction)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpretErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		check    func(t *testing.T, err error)
	}{
		{
			name:     "refusal is a parse error",
			provider: replying("Lo siento, no puedo ayudar"),
			check: func(t *testing.T, err error) {
				var pe *ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, "Lo siento, no puedo ayudar", pe.RawText)
			},
		},
		{
			name:     "no text is an empty response",
			provider: replying(""),
			check: func(t *testing.T, err error) {
				var ee *EmptyResponseError
				require.True(t, errors.As(err, &ee))
				assert.Equal(t, `{"choices":[]}`, ee.Body)
			},
		},
		{
			name:     "whitespace text is a parse error",
			provider: replying("   "),
			check: func(t *testing.T, err error) {
				var pe *ParseError
				require.True(t, errors.As(err, &pe))
			},
		},
		{
			name:     "wrong shape is a schema error",
			provider: replying(`{"tipo":"buffer"}`),
			check: func(t *testing.T, err error) {
				var se *SchemaError
				require.True(t, errors.As(err, &se))
			},
		},
		{
			name:     "non-2xx is a transport error",
			provider: &fakeProvider{err: &llm.StatusError{Provider: "fake", StatusCode: 401, Body: "no auth"}},
			check: func(t *testing.T, err error) {
				var te *TransportError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, 401, te.Status)
				assert.Equal(t, "no auth", te.Body)
			},
		},
		{
			name:     "undecodable body is an empty response",
			provider: &fakeProvider{err: &llm.BodyError{Provider: "fake", Body: "<html>", Err: errors.New("bad")}},
			check: func(t *testing.T, err error) {
				var ee *EmptyResponseError
				require.True(t, errors.As(err, &ee))
				assert.Equal(t, "<html>", ee.Body)
			},
		},
		{
			name:     "network failure is a transport error",
			provider: &fakeProvider{err: fmt.Errorf("fake request failed: %w", errors.New("connection refused"))},
			check: func(t *testing.T, err error) {
				var te *TransportError
				require.True(t, errors.As(err, &te))
				assert.Zero(t, te.Status)
				assert.Contains(t, te.Reason, "connection refused")
			},
		},
		{
			name:     "deadline is a timeout",
			provider: &fakeProvider{err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded)},
			check: func(t *testing.T, err error) {
				var te *TransportError
				require.True(t, errors.As(err, &te))
				assert.True(t, te.Timeout())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewInterpreter(tt.provider, "").Interpret(context.Background(), "algo")
			require.Error(t, err)
			assert.Nil(t, got)
			tt.check(t, err)
		})
	}
}

func TestInterpretRejectsBlankInstruction(t *testing.T) {
	p := replying("{}")
	_, err := NewInterpreter(p, "").Interpret(context.Background(), " \n\t ")
	assert.ErrorIs(t, err, ErrEmptyInstruction)
	assert.Empty(t, p.calls)
}

func TestInterpretTimesOutAgainstSlowEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p := llm.NewCustomProvider(srv.URL, "k", "m")
	_, err := NewInterpreter(p, "", WithTimeout(50*time.Millisecond)).Interpret(context.Background(), "centra el mapa")

	var te *TransportError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, "timeout", te.Reason)
}
