package ops

import "github.com/gjrichter/ixmaps-data/sink"

// testSink records whether Warn/Error were ever called, so fail-soft paths
// can be asserted without pulling in a real logging backend.
type testSink struct {
	warned *bool
}

func (s testSink) Log(string, ...any) {}
func (s testSink) Warn(string, ...any) {
	if s.warned != nil {
		*s.warned = true
	}
}
func (s testSink) Error(error, string, ...any) {
	if s.warned != nil {
		*s.warned = true
	}
}

// warnSink returns a sink.Sink that flips *warned to true on any Warn/Error
// call, letting tests assert a fail-soft path was taken.
func warnSink(warned *bool) sink.Sink {
	return testSink{warned: warned}
}
