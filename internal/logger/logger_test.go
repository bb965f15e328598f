package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
	return entry
}

func TestNewLogger_RoleAndCallerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("sync-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "sync-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")
	l := NewClientLogger("sync-client", path)

	l.Info().Str("table", "events").Msg("queue drained")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	entry := decodeEntry(t, []byte(lines[0]))
	assert.Equal(t, "sync-client", entry["role"])
	assert.Equal(t, "events", entry["table"])
	assert.Equal(t, "queue drained", entry["message"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("parent-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.Info().Msg("child")

	assert.Equal(t, "parent-role", decodeEntry(t, buf.Bytes())["role"])
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("pass", "42").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "42", decodeEntry(t, buf.Bytes())["pass"])
}

func TestFromContext_NoLoggerAttached(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	// must not panic
	l.Info().Msg("dropped")
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "abc", decodeEntry(t, buf.Bytes())["trace_id"])
}
