// Package sink defines the injectable diagnostic surface every package in
// this module reports through instead of a global logger (spec §9: "Global
// alert/log sinks ... inject (log, warn, error) sinks through the façade
// constructor"). Logging itself is an external collaborator (spec §1); this
// package only defines the seam other packages call into.
package sink

// Sink receives diagnostic events from the engine. Implementations decide
// where these go — a structured logger, an in-memory test recorder, a UI
// alert banner. Fields are passed as alternating key/value pairs, mirroring
// a zerolog call chain (log.Warn().Str(k, v).Msg(msg)) without requiring
// callers to depend on zerolog themselves.
type Sink interface {
	// Log records a routine diagnostic event (e.g. a CSV delimiter retry).
	Log(msg string, kv ...any)
	// Warn records a semantic error per spec §7 category 4: the caller gets
	// an empty-but-typed Table or a no-op, and this is how they find out why.
	Warn(msg string, kv ...any)
	// Error records a Transport/Format/Engine failure (spec §7 categories
	// 1–3) that is about to be routed to the caller's error callback.
	Error(err error, msg string, kv ...any)
}

// Noop is a Sink that discards every event. Useful as a default for
// constructors that accept a nil Sink, and in tests that don't assert on
// diagnostics.
type Noop struct{}

func (Noop) Log(string, ...any)          {}
func (Noop) Warn(string, ...any)         {}
func (Noop) Error(error, string, ...any) {}

// OrNoop returns s if non-nil, otherwise Noop{}. Exported so every package
// constructor in this module can normalize an optionally-nil Sink in one
// line: `s = sink.OrNoop(s)`.
func OrNoop(s Sink) Sink {
	if s == nil {
		return Noop{}
	}
	return s
}
