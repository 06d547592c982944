package diag

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Context is the execution context shared by the components of one run.
// It is read-only after construction and safe for concurrent use.
type Context struct {
	log   *logrus.Entry
	trace Set
	runID uuid.UUID
}

// NewContext binds a logger and a trace set under a fresh run id.
// A nil logger falls back to Discard().
func NewContext(logger *logrus.Logger, trace Set) *Context {
	if logger == nil {
		logger = Discard()
	}
	id := uuid.New()

	return &Context{
		log:   logger.WithField("run_id", id.String()),
		trace: trace,
		runID: id,
	}
}

// Background returns a context that logs nothing and traces nothing.
func Background() *Context {
	return NewContext(nil, 0)
}

// orBackground lets components accept a nil *Context.
func (c *Context) orBackground() *Context {
	if c == nil {
		return Background()
	}

	return c
}

// Resolve returns c, or Background() when c is nil.
func Resolve(c *Context) *Context { return c.orBackground() }

// RunID identifies the run in logs and manifests.
func (c *Context) RunID() uuid.UUID { return c.runID }

// Trace returns the enabled channel set.
func (c *Context) Trace() Set { return c.trace }

// Enabled reports whether ch is traced.
func (c *Context) Enabled(ch Channel) bool { return c.trace.Has(ch) }

// Logger returns the entry for component, tagged with run id and component.
func (c *Context) Logger(component string) *logrus.Entry {
	return c.log.WithField("component", component)
}

// With returns a copy whose logger carries an extra field; trace set and run
// id are shared.
func (c *Context) With(key string, value interface{}) *Context {
	cp := *c
	cp.log = c.log.WithField(key, value)

	return &cp
}

// Tracef logs at debug level when ch is enabled.
func (c *Context) Tracef(ch Channel, format string, args ...interface{}) {
	if !c.trace.Has(ch) {
		return
	}
	c.log.WithField(channelKey, ch.String()).Debugf(format, args...)
}

// TraceFields logs fields at debug level when ch is enabled.
func (c *Context) TraceFields(ch Channel, msg string, fields logrus.Fields) {
	if !c.trace.Has(ch) {
		return
	}
	c.log.WithField(channelKey, ch.String()).WithFields(fields).Debug(msg)
}

// channelKey tags trace entries; traceFilter lets them through below the
// configured level.
const channelKey = "channel"

// NewLogger builds a logger writing to w. level is a logrus level name
// ("debug", "info", "warn", "error"); format is "text" or "json". Unknown
// levels fall back to info, unknown formats to text. When trace channels are
// enabled the logger accepts debug entries, but only trace lines are written
// below level.
func NewLogger(w io.Writer, level, format string, trace Set) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	var f logrus.Formatter
	switch strings.ToLower(format) {
	case "json":
		f = &logrus.JSONFormatter{}
	default:
		f = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		}
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if trace != 0 && lvl < logrus.DebugLevel {
		f = &traceFilter{next: f, level: lvl}
		lvl = logrus.DebugLevel
	}
	logger.SetFormatter(f)
	logger.SetLevel(lvl)

	return logger
}

// traceFilter drops entries less severe than level unless they carry a
// trace channel.
type traceFilter struct {
	next  logrus.Formatter
	level logrus.Level
}

func (f *traceFilter) Format(e *logrus.Entry) ([]byte, error) {
	if e.Level > f.level {
		if _, ok := e.Data[channelKey]; !ok {
			return nil, nil
		}
	}

	return f.next.Format(e)
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)

	return logger
}
