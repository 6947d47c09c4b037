package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config selects where and how a tracer writes.
type Config struct {
	Level      Level
	Format     Format    // FormatAuto picks by the OutputPath extension
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "" or "-" is stderr
}

// New returns Nop for LevelOff and a StreamTracer otherwise.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		switch filepath.Ext(cfg.OutputPath) {
		case ".ndjson", ".jsonl":
			format = FormatNDJSON
		default:
			format = FormatText
		}
	}

	var w io.Writer
	switch {
	case cfg.Output != nil:
		w = cfg.Output
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		// stderr не закрываем
		w = struct{ io.Writer }{os.Stderr}
	default:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("trace output: %w", err)
		}
		w = f
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

// StreamTracer formats each event as it arrives and writes it to w.
// Write errors are ignored: tracing never fails a command.
type StreamTracer struct {
	level  Level
	format Format
	start  time.Time

	mu  sync.Mutex
	w   io.Writer
	seq uint64
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format, start: time.Now()}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	t.mu.Lock()
	t.seq++
	ev.Seq = t.seq
	_, _ = t.w.Write(FormatEvent(ev, t.format, t.start))
	t.mu.Unlock()
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the output when it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
