package lib

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerLevelFilter(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		level    int32
		emit     func(l LoggerI)
		expected string
	}{
		{
			name:     "debugAtDebug",
			detail:   "a debug logger emits debug messages with the debug tag",
			level:    DebugLevel,
			emit:     func(l LoggerI) { l.Debug("nonce derivation") },
			expected: "DEBUG: nonce derivation",
		},
		{
			name:   "debugAtInfo",
			detail: "an info logger drops debug messages",
			level:  InfoLevel,
			emit:   func(l LoggerI) { l.Debug("nonce derivation") },
		},
		{
			name:     "infoAtInfo",
			detail:   "an info logger emits info messages",
			level:    InfoLevel,
			emit:     func(l LoggerI) { l.Info("added block") },
			expected: "INFO: added block",
		},
		{
			name:     "warnAtInfo",
			detail:   "a warn message clears an info threshold",
			level:    InfoLevel,
			emit:     func(l LoggerI) { l.Warn("retrying") },
			expected: "WARN: retrying",
		},
		{
			name:   "infoAtError",
			detail: "an error logger drops info messages",
			level:  ErrorLevel,
			emit:   func(l LoggerI) { l.Info("added block") },
		},
		{
			name:     "errorAtError",
			detail:   "error messages always clear the highest threshold",
			level:    ErrorLevel,
			emit:     func(l LoggerI) { l.Error("ledger rejected block") },
			expected: "ERROR: ledger rejected block",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := new(bytes.Buffer)
			test.emit(NewWriterLogger(test.level, out))
			if test.expected == "" {
				require.Empty(t, out.String(), test.detail)
			} else {
				require.Contains(t, out.String(), test.expected, test.detail)
			}
		})
	}
}

func TestLoggerFormatting(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewWriterLogger(DebugLevel, out)
	l.Infof("added block %d to tributary %s", 7, "aa")
	// the format arguments are rendered into the tagged line
	require.Contains(t, out.String(), "INFO: added block 7 to tributary aa")
	// every entry is a single stamped line
	require.True(t, strings.HasSuffix(out.String(), "\n"))
	require.Equal(t, 1, strings.Count(out.String(), "\n"))
	l.Errorf("missing provided transaction %x", []byte{0xAB})
	require.Contains(t, out.String(), "ERROR: missing provided transaction ab")
}

func TestLoggerFromConfig(t *testing.T) {
	config := DefaultConfig()
	config.DataDirPath = t.TempDir()
	config.LogLevel = "error"
	l := NewLogger(config)
	// the configured level filters, and the file sink directory was created
	logger, ok := l.(*Logger)
	require.True(t, ok)
	require.Equal(t, ErrorLevel, logger.level)
	require.DirExists(t, filepath.Join(config.DataDirPath, LogDirectory))
}
