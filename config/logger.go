package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

type Logger struct{}

// Log is the process wide logger. Packages log through it instead of holding their own zerolog instance.
var Log *Logger

func send(event *zerolog.Event, msg string, err []error) {
	if len(err) == 1 {
		event = event.Err(err[0])
	}
	event.Msg(msg)
}

func (l *Logger) ZDebug() *zerolog.Event {
	return zlog.Debug()
}

func (l *Logger) Debug(msg string, err ...error) {
	send(zlog.Debug(), msg, err)
}

func (l *Logger) Debugf(msg string, args ...interface{}) {
	zlog.Debug().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) ZInfo() *zerolog.Event {
	return zlog.Info()
}

func (l *Logger) Info(msg string, err ...error) {
	send(zlog.Info(), msg, err)
}

func (l *Logger) Infof(msg string, args ...interface{}) {
	zlog.Info().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) ZWarn() *zerolog.Event {
	return zlog.Warn()
}

func (l *Logger) Warn(msg string, err ...error) {
	send(zlog.Warn(), msg, err)
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, err ...error) {
	send(zlog.Error(), msg, err)
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	zlog.Error().Msg(fmt.Sprintf(msg, args...))
}

func (l *Logger) Fatal(msg string, err ...error) {
	send(zlog.Fatal(), msg, err)
}

func (l *Logger) Fatalf(msg string, args ...interface{}) {
	zlog.Fatal().Msg(fmt.Sprintf(msg, args...))
}

func logWriter(logPath string) io.Writer {
	if len(logPath) == 0 {
		return os.Stdout
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		panic(err)
	}
	return io.MultiWriter(os.Stdout, file)
}

// DoConfigureLogger points the global logger at stdout and, when logPath is set, the file at logPath.
// Unknown levels fall back to info.
func DoConfigureLogger(logPath string, logLevel string, prettyLogging bool) {
	writers := logWriter(logPath)
	if prettyLogging {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: writers})
	} else {
		zlog.Logger = zlog.Output(writers)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
