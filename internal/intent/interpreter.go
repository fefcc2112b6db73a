package intent

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sant0-9/divimap/internal/llm"
	"github.com/sant0-9/divimap/internal/logger"
	"github.com/sant0-9/divimap/internal/metrics"
	"github.com/sant0-9/divimap/internal/prompts"
)

const (
	DefaultTimeout = 15 * time.Second

	maxTokens   = 200
	temperature = 0.1
)

// Interpreter turns free-text instructions into intents by asking a language
// model. It never touches map state.
type Interpreter struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
	log      *zerolog.Logger
}

type Option func(*Interpreter)

// WithTimeout bounds each completion call. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(i *Interpreter) {
		if d > 0 {
			i.timeout = d
		}
	}
}

func WithLogger(l *zerolog.Logger) Option {
	return func(i *Interpreter) { i.log = l }
}

// NewInterpreter creates an interpreter. An empty model uses the provider's
// default.
func NewInterpreter(provider llm.Provider, model string, opts ...Option) *Interpreter {
	i := &Interpreter{
		provider: provider,
		model:    model,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Interpret asks the model for the intent behind instruction. Failures are
// always one of ErrEmptyInstruction, *TransportError, *EmptyResponseError,
// *ParseError or *SchemaError.
func (i *Interpreter) Interpret(ctx context.Context, instruction string) (Intent, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}
	log := logger.FromContext(ctx, i.log)

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	req := llm.NewRequest(i.model, prompts.System, buildPrompt(instruction))
	req.MaxTokens = maxTokens
	req.Temperature = temperature

	start := time.Now()
	resp, err := i.provider.Complete(ctx, req)
	metrics.ObserveCompletion(i.provider.Name(), time.Since(start).Seconds())
	if err != nil {
		log.Warn().Err(err).Str("provider", i.provider.Name()).Msg("completion call failed")
		return nil, classify(err)
	}

	if resp.Content == "" {
		log.Warn().Str("body", truncate(string(resp.Raw), 500)).Msg("completion reply has no text")
		return nil, &EmptyResponseError{Body: string(resp.Raw)}
	}

	it, err := ParseReply(resp.Content)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			log.Debug().Str("raw", pe.RawText).Str("cleaned", pe.CleanedText).Msg("reply is not JSON")
		} else {
			log.Debug().Err(err).Str("raw", resp.Content).Msg("reply has an unexpected shape")
		}
		return nil, err
	}

	log.Debug().Str("tipo", string(it.Kind())).Msg("instruction interpreted")
	return it, nil
}

func classify(err error) error {
	var se *llm.StatusError
	if errors.As(err, &se) {
		return &TransportError{Status: se.StatusCode, Body: se.Body, Reason: http.StatusText(se.StatusCode), Err: err}
	}

	var be *llm.BodyError
	if errors.As(err, &be) {
		return &EmptyResponseError{Body: be.Body}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Reason: "timeout", Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TransportError{Reason: "timeout", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &TransportError{Reason: "canceled", Err: err}
	}
	return &TransportError{Reason: err.Error(), Err: err}
}
