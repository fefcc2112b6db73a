package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLevelsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Build(Config{Level: "warn", Component: "session"}, &buf)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "session", rec["component"])
	assert.Contains(t, rec, "timestamp")
}

func TestFromContextAddsInstructionID(t *testing.T) {
	var buf bytes.Buffer
	l := Build(Config{Level: "debug"}, &buf)

	ctx := WithInstructionID(context.Background(), "abc")
	FromContext(ctx, &l).Debug().Msg("x")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "abc", rec["instruction_id"])
}

func TestWithInstructionIDGeneratesID(t *testing.T) {
	ctx := WithInstructionID(context.Background(), "")
	assert.Len(t, InstructionID(ctx), 36)
	assert.Empty(t, InstructionID(context.Background()))
}

func TestFromContextNilParent(t *testing.T) {
	l := FromContext(context.Background(), nil)
	require.NotNil(t, l)
	l.Info().Msg("discarded")
}
