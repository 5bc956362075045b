// Package logging implements the append-style logging facade (component
// J): single-line, per-level statements through a pluggable sink, with an
// in-memory buffer retained until a real sink is installed.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors zapcore.Level so callers of this package don't need to
// import zap directly.
type Level = zapcore.Level

const (
	Debug = zapcore.DebugLevel
	Info  = zapcore.InfoLevel
	Warn  = zapcore.WarnLevel
	Error = zapcore.ErrorLevel
)

// Sink is the append-style destination the factory writes through: Start
// returns a writable slice sized for at least capacityHint bytes, the
// caller fills it and calls Commit with the number of bytes actually used.
// Implementations here just wrap a zap core, since the teacher's own
// logging is structured and line-buffered in the same spirit.
type Sink interface {
	Start(level Level, logID string, timestampNs int64, capacityHint int) []byte
	Commit(n int)
}

type bufferedLine struct {
	level   Level
	logID   string
	tsNs    int64
	payload []byte
}

// memorySink buffers log lines until a real sink replaces it.
type memorySink struct {
	mu      sync.Mutex
	lines   []bufferedLine
	pending bufferedLine
	scratch []byte
}

func newMemorySink() *memorySink {
	return &memorySink{}
}

func (m *memorySink) Start(level Level, logID string, tsNs int64, capacityHint int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cap(m.scratch) < capacityHint {
		m.scratch = make([]byte, capacityHint)
	}
	m.pending = bufferedLine{level: level, logID: logID, tsNs: tsNs}
	return m.scratch[:capacityHint]
}

func (m *memorySink) Commit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line := m.pending
	line.payload = append([]byte(nil), m.scratch[:n]...)
	m.lines = append(m.lines, line)
}

// zapSink adapts a *zap.Logger to the Sink interface: Start renders
// directly into a scratch buffer and Commit forwards the finished line to
// zap at the recorded level. Like the rest of the session, it assumes a
// single owning goroutine pairs every Start with exactly one Commit before
// the next Start (component J runs on the same single-threaded event loop
// as the session, per the no-internal-locks concurrency model).
type zapSink struct {
	logger  *zap.Logger
	pending bufferedLine
	scratch []byte
}

func newZapSink(logger *zap.Logger) *zapSink {
	return &zapSink{logger: logger}
}

func (z *zapSink) Start(level Level, logID string, tsNs int64, capacityHint int) []byte {
	if cap(z.scratch) < capacityHint {
		z.scratch = make([]byte, capacityHint)
	}
	z.pending = bufferedLine{level: level, logID: logID, tsNs: tsNs}
	return z.scratch[:capacityHint]
}

func (z *zapSink) Commit(n int) {
	line := string(z.scratch[:n])
	switch z.pending.level {
	case Debug:
		z.logger.Debug(line, zap.String("log_id", z.pending.logID))
	case Warn:
		z.logger.Warn(line, zap.String("log_id", z.pending.logID))
	case Error:
		z.logger.Error(line, zap.String("log_id", z.pending.logID))
	default:
		z.logger.Info(line, zap.String("log_id", z.pending.logID))
	}
}

// Factory hands out a Sink, buffering into memory until InstallSink
// replaces it, at which point the buffered lines are dumped in order.
type Factory struct {
	mu   sync.Mutex
	sink Sink
	mem  *memorySink
}

// NewFactory creates a Factory backed by an in-memory sink.
func NewFactory() *Factory {
	mem := newMemorySink()
	return &Factory{sink: mem, mem: mem}
}

// InstallSink replaces the active sink with s, first flushing any buffered
// lines the in-memory sink had accumulated, in order.
func (f *Factory) InstallSink(s Sink) {
	f.mu.Lock()
	prior := f.mem
	f.sink = s
	f.mem = nil
	f.mu.Unlock()

	if prior == nil {
		return
	}
	prior.mu.Lock()
	lines := prior.lines
	prior.mu.Unlock()
	for _, l := range lines {
		buf := s.Start(l.level, l.logID, l.tsNs, len(l.payload))
		n := copy(buf, l.payload)
		s.Commit(n)
	}
}

// InstallZap is a convenience that wraps logger in a zapSink and installs
// it, the way a production deployment would replace the startup in-memory
// sink once the real logging pipeline is configured.
func (f *Factory) InstallZap(logger *zap.Logger) {
	f.InstallSink(newZapSink(logger))
}

// Logger is a per-component handle bound to a log_id, mirroring the
// teacher's habit of tagging every log line with the FIX session or
// subsystem it came from.
type Logger struct {
	factory *Factory
	logID   string
}

// For returns a Logger tagged with logID.
func (f *Factory) For(logID string) *Logger {
	return &Logger{factory: f, logID: logID}
}

func (l *Logger) write(level Level, tsNs int64, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.factory.mu.Lock()
	sink := l.factory.sink
	l.factory.mu.Unlock()

	buf := sink.Start(level, l.logID, tsNs, len(msg))
	n := copy(buf, msg)
	sink.Commit(n)
}

func (l *Logger) Debugf(tsNs int64, format string, args ...any) { l.write(Debug, tsNs, format, args...) }
func (l *Logger) Infof(tsNs int64, format string, args ...any)  { l.write(Info, tsNs, format, args...) }
func (l *Logger) Warnf(tsNs int64, format string, args ...any)  { l.write(Warn, tsNs, format, args...) }
func (l *Logger) Errorf(tsNs int64, format string, args ...any) { l.write(Error, tsNs, format, args...) }
