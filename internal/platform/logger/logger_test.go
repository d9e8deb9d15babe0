package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, slog.LevelError, Error.Slog())
}

func TestJSONLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "vet", Output: &buf})

	l.With(map[string]any{"request_id": "r-1"}).Info("pet created", map[string]any{
		"pet_id": "p-1",
		"err":    errors.New("boom"),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pet created", entry["msg"])
	assert.Equal(t, "vet", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "p-1", entry["pet_id"])
	assert.Equal(t, "boom", entry["err"])
}

func TestLevelVar_CanBeChangedAtRuntime(t *testing.T) {
	var buf bytes.Buffer
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelWarn)
	l := New(Options{Format: FormatText, Output: &buf, LevelVar: lv})

	l.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	lv.Set(slog.LevelDebug)
	l.Debug("visible", nil)
	assert.Contains(t, buf.String(), "visible")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf})

	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info("hola", nil)
	assert.Contains(t, buf.String(), "hola")

	assert.NotNil(t, FromContext(context.Background()))
}
