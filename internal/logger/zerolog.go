package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ZerologLogger struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level LogLevel) *ZerologLogger {
	logger := zerolog.New(writer).
		Level(toZerolog(level)).
		With().
		Timestamp().
		Logger()

	return &ZerologLogger{logger: logger}
}

func NewConsoleLogger(level LogLevel) *ZerologLogger {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	return NewZerolog(consoleWriter, level)
}

// WithComponent returns a child logger that tags every entry with the component name.
func (z *ZerologLogger) WithComponent(component string) *ZerologLogger {
	return &ZerologLogger{logger: z.logger.With().Str("component", component).Logger()}
}

func (z *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	z.emit(z.logger.Debug(), msg, fields)
}

func (z *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	z.emit(z.logger.Info(), msg, fields)
}

func (z *ZerologLogger) Warning(msg string, fields map[string]interface{}) {
	z.emit(z.logger.Warn(), msg, fields)
}

func (z *ZerologLogger) Error(msg string, err error, fields map[string]interface{}) {
	z.emit(z.logger.Error().Err(err), msg, fields)
}

func (z *ZerologLogger) emit(event *zerolog.Event, msg string, fields map[string]interface{}) {
	if event == nil {
		return
	}
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func toZerolog(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
