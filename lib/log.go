package lib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogDirectory = "logs"
	LogFileName  = "log"
)

/*
	Leveled, colored logging for the adapter. Every message at or above the configured
	level is stamped and written to the logger's sink; the standard sink is stdout plus
	an auto-rotating file under the data directory so operators can tail a chain's
	history after the fact
*/

func init() {
	color.NoColor = false
}

// LoggerI defines the leveled and formatted logging methods used across the adapter
type LoggerI interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

const (
	DebugLevel int32 = -4
	InfoLevel  int32 = 0
	WarnLevel  int32 = 4
	ErrorLevel int32 = 8
)

// levelTag pairs the printed tag of a level with the color it is rendered in
type levelTag struct {
	tag   string
	color func(format string, a ...interface{}) string
}

// levelTags maps each level to its rendering; Fatal reuses the error level with
// its own tag before terminating
var levelTags = map[int32]levelTag{
	DebugLevel: {"DEBUG", color.BlueString},
	InfoLevel:  {"INFO", color.GreenString},
	WarnLevel:  {"WARN", color.YellowString},
	ErrorLevel: {"ERROR", color.RedString},
}

var _ LoggerI = &Logger{}

// Logger is the concrete LoggerI, filtering by a minimum level and writing to a sink
type Logger struct {
	level int32
	out   io.Writer
}

// Debug() logs a message at the Debug level
func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg) }

// Info() logs a message at the Info level
func (l *Logger) Info(msg string) { l.log(InfoLevel, msg) }

// Warn() logs a message at the Warn level
func (l *Logger) Warn(msg string) { l.log(WarnLevel, msg) }

// Error() logs a message at the Error level
func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg) }

// Fatal() logs an error message and terminates the program
func (l *Logger) Fatal(msg string) {
	l.write(color.RedString("FATAL: " + msg))
	os.Exit(1)
}

// Debugf() logs a formatted message at the Debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}

// Infof() logs a formatted message at the Info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}

// Warnf() logs a formatted message at the Warn level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}

// Errorf() logs a formatted message at the Error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}

// Fatalf() logs a formatted error message and terminates the program
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Fatal(fmt.Sprintf(format, args...))
}

// log() renders the message with its level tag and color, dropping it when the
// level is below the logger's threshold
func (l *Logger) log(level int32, msg string) {
	if level < l.level {
		return
	}
	t := levelTags[level]
	l.write(t.color(t.tag + ": " + msg))
}

// write() outputs the rendered message with a timestamp to the sink
func (l *Logger) write(msg string) {
	stamp := color.HiBlackString(time.Now().Format(time.StampMilli))
	if _, err := fmt.Fprintf(l.out, "%s %s\n", stamp, msg); err != nil {
		fmt.Println(newLogError(err))
	}
}

// NewLogger() builds the adapter's logger from its configuration: the configured
// level, writing to stdout and an auto-rotating file under <dataDir>/logs
func NewLogger(config Config) LoggerI {
	logDir := filepath.Join(config.DataDirPath, LogDirectory)
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic(err)
	}
	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    1, // megabyte
		MaxBackups: 1500,
		MaxAge:     14, // days
		Compress:   true,
	}
	return &Logger{level: config.GetLogLevel(), out: io.MultiWriter(os.Stdout, logFile)}
}

// NewWriterLogger() builds a logger over an explicit level and sink
func NewWriterLogger(level int32, out io.Writer) LoggerI {
	return &Logger{level: level, out: out}
}

// NewDefaultLogger() logs everything to stdout
func NewDefaultLogger() LoggerI { return NewWriterLogger(DebugLevel, os.Stdout) }

// NewNullLogger() discards all log output
func NewNullLogger() LoggerI { return NewWriterLogger(DebugLevel, io.Discard) }
