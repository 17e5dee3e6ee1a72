package logger

// Logger is the leveled logging surface shared by ConsoleLogger and NopLogger.
type Logger interface {
	Log(level Level, msg Message)
	Trace(msg Message)
	Debug(msg Message)
	Info(msg Message)
	Warn(msg Message)
	Error(msg Message)
	Debugf(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = NopLogger{}
)

// NopLogger discards every message.
type NopLogger struct{}

// Nop returns a logger that discards all messages.
func Nop() NopLogger {
	return NopLogger{}
}

func (NopLogger) Log(_ Level, _ Message) {}
func (NopLogger) Trace(_ Message) {}
func (NopLogger) Debug(_ Message) {}
func (NopLogger) Info(_ Message) {}
func (NopLogger) Warn(_ Message) {}
func (NopLogger) Error(_ Message) {}
func (NopLogger) Tracef(_ string, _ ...any) {}
func (NopLogger) Debugf(_ string, _ ...any) {}
func (NopLogger) Infof(_ string, _ ...any) {}
func (NopLogger) Warnf(_ string, _ ...any) {}
func (NopLogger) Errorf(_ string, _ ...any) {}
