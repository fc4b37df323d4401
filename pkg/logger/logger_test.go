package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.Critical("app: init failed", "component", "db")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "CRITICAL", entry["level"])
	assert.Equal(t, "db", entry["component"])
}

func TestBusinessAndInternalErrors(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "json").With("import_id", "abc")

	log.BusinessError("sessions.book: session full", errors.New("session is fully booked"), "session_id", 7)
	log.InternalError("members.register: failed", errors.New("connection reset"))
	log.BusinessError("ignored", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "WARN", first["level"])
	assert.Equal(t, "session is fully booked", first["err"])
	assert.Equal(t, "abc", first["import_id"])
	assert.Equal(t, "ERROR", second["level"])
}

func TestOptionsDefaults(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("", "development"))
	assert.Equal(t, slog.LevelInfo, parseLevel("", "production"))
	assert.Equal(t, LevelCritical, parseLevel("fatal", "production"))
	assert.Equal(t, "text", parseFormat("", "development"))
	assert.Equal(t, "json", parseFormat("", "production"))
	assert.Equal(t, "text", parseFormat(" TEXT ", "production"))
}

func TestNopDropsEverything(t *testing.T) {
	log := Nop()
	log.Critical("nothing to see")
	log.InternalError("nothing", errors.New("boom"))
}
