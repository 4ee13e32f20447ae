package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoWithFieldsWritesJSON(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	var buf bytes.Buffer
	InitWriter("info", &buf)
	InfoWithFields("getPosts served", Fields{"request_id": "abc", "returned": 3})
	DebugWithFields("hidden at info level", Fields{"request_id": "abc"})
	_ = Log.(*slog.Logger).Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "getPosts served", entry["message"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.EqualValues(t, 3, entry["returned"])
}

func TestWithServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "xmlrpc-api")
	assert.Equal(t, Fields{"service_name": "xmlrpc-api"}, withServiceName(nil))
	assert.Equal(t, Fields{"service_name": "custom"}, withServiceName(Fields{"service_name": "custom"}))
}
