package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

var _ srp.Logger = (*logging.Logger)(nil)

func newTestLogger(level logging.LogLevel, format logging.LogFormat) (*logging.Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := logging.New(level, format)
	l.SetOutput(&out, &errOut)
	return l, &out, &errOut
}

func TestLogger_JSON(t *testing.T) {
	l, out, _ := newTestLogger(logging.LevelDebug, logging.FormatJSON)

	l.Warn("SRP handshake rejected", map[string]any{"code": "INVALID_SESSION_PROOF", "party": "client"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "SRP handshake rejected", entry["message"])
	assert.NotEmpty(t, entry["timestamp"])

	fields, ok := entry["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "client", fields["party"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, out, errOut := newTestLogger(logging.LevelWarn, logging.FormatJSON)

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, out.String())

	l.Warn("shown")
	assert.Contains(t, out.String(), "shown")

	l.Error("failure")
	assert.Contains(t, errOut.String(), "failure")
	assert.NotContains(t, out.String(), "failure")
}

func TestLogger_Human(t *testing.T) {
	l, out, _ := newTestLogger(logging.LevelInfo, logging.FormatHuman)

	l.Info("parameters loaded", map[string]any{"prime_group": "2048", "hash_algorithm": "SHA-256"})

	line := out.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "info: parameters loaded hash_algorithm=SHA-256 prime_group=2048")
}

func TestLogger_RedactsSecrets(t *testing.T) {
	l, out, _ := newTestLogger(logging.LevelDebug, logging.FormatJSON)

	l.Debug("session derived", map[string]any{
		"key":      "deadbeef",
		"proof":    "cafebabe",
		"verifier": "0badf00d",
		"role":     "server",
	})

	assert.NotContains(t, out.String(), "deadbeef")
	assert.NotContains(t, out.String(), "cafebabe")
	assert.NotContains(t, out.String(), "0badf00d")
	assert.Contains(t, out.String(), `"role":"server"`)
}

func TestLogger_WithFields(t *testing.T) {
	l, out, _ := newTestLogger(logging.LevelDebug, logging.FormatJSON)

	l.WithFields(map[string]any{"role": "client"}).Warn("rejected", map[string]any{"code": "X"})

	assert.Contains(t, out.String(), `"role":"client"`)
	assert.Contains(t, out.String(), `"code":"X"`)
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, logging.LevelWarn, level)

	_, err = logging.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	format, err := logging.ParseFormat("human")
	require.NoError(t, err)
	assert.Equal(t, logging.FormatHuman, format)

	_, err = logging.ParseFormat("xml")
	assert.Error(t, err)
}

func TestRedactor(t *testing.T) {
	r := logging.NewRedactor()

	fields := map[string]any{
		"A":        "public",
		"salt":     "beb25379",
		"hash_key": "kept",
		"nested":   map[string]any{"Password": "hunter2", "group": "2048"},
	}

	redacted := r.RedactFields(fields)
	assert.Equal(t, "[REDACTED]", redacted["A"])
	assert.Equal(t, "[REDACTED]", redacted["salt"])
	assert.Equal(t, "kept", redacted["hash_key"])

	nested, ok := redacted["nested"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", nested["Password"])
	assert.Equal(t, "2048", nested["group"])

	assert.Equal(t, "beb25379", fields["salt"], "input must not be modified")
	assert.Nil(t, r.RedactFields(nil))

	r.RemoveSensitiveKey("salt")
	r.AddSensitiveKey("Group")
	redacted = r.RedactFields(map[string]any{"salt": "s", "group": "g"})
	assert.Equal(t, "s", redacted["salt"])
	assert.Equal(t, "[REDACTED]", redacted["group"])
}
