package logsink

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZerologSink_LogWritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	s := NewWithLogger(zerolog.New(&buf))

	s.Log("csv delimiter retry", "attempt", 2)

	out := buf.String()
	assert.Contains(t, out, "csv delimiter retry")
	assert.Contains(t, out, "attempt")
}

func TestZerologSink_WarnWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewWithLogger(zerolog.New(&buf))

	s.Warn("column not found", "column", "missing")

	assert.Contains(t, buf.String(), "column not found")
}

func TestZerologSink_ErrorIncludesErrField(t *testing.T) {
	var buf bytes.Buffer
	s := NewWithLogger(zerolog.New(&buf))

	s.Error(errors.New("boom"), "engine query failed")

	out := buf.String()
	assert.Contains(t, out, "engine query failed")
	assert.Contains(t, out, "boom")
}
