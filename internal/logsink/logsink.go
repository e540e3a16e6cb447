// Package logsink provides the default zerolog-backed sink.Sink
// implementation, injected through the façade constructor instead of a
// global logger.
package logsink

import (
	"os"

	"github.com/gjrichter/ixmaps-data/sink"
	"github.com/rs/zerolog"
)

// ZerologSink adapts a zerolog.Logger to sink.Sink.
type ZerologSink struct {
	logger zerolog.Logger
}

// New builds a ZerologSink writing a human-readable console format to
// stderr via zerolog.ConsoleWriter.
func New() *ZerologSink {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return &ZerologSink{logger: logger}
}

// NewWithLogger wraps an already-configured zerolog.Logger, e.g. one built
// by a host application with its own output/level settings.
func NewWithLogger(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

func (z *ZerologSink) Log(msg string, kv ...any) {
	withFields(z.logger.Info(), kv).Msg(msg)
}

func (z *ZerologSink) Warn(msg string, kv ...any) {
	withFields(z.logger.Warn(), kv).Msg(msg)
}

func (z *ZerologSink) Error(err error, msg string, kv ...any) {
	withFields(z.logger.Error().Err(err), kv).Msg(msg)
}

// withFields attaches alternating key/value pairs to an in-progress
// zerolog event, generic over the caller-supplied value types.
func withFields(event *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, kv[i+1])
	}
	return event
}

var _ sink.Sink = (*ZerologSink)(nil)
