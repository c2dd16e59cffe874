package lib

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	// the engine timing constants are static configuration
	require.Equal(t, 3*time.Second, c.BlockProcessingTime())
	require.Equal(t, 1*time.Second, c.LatencyTime())
	// the provided transaction retry waits 30 seconds between attempts
	require.Equal(t, 30*time.Second, c.ProvidedRetryWait())
	require.Equal(t, InfoLevel, c.GetLogLevel())
}

func TestConfigFileRoundTrip(t *testing.T) {
	// write a modified config to a temp file
	path := filepath.Join(t.TempDir(), ConfigFilePath)
	c := DefaultConfig()
	c.LogLevel = "debug"
	c.ProvidedRetryWaitMS = 1000
	require.NoError(t, c.WriteToFile(path))
	// read it back
	got, err := NewConfigFromFile(path)
	require.NoError(t, err)
	// the round-trip must preserve the modified options
	require.Equal(t, c, got)
	require.Equal(t, DebugLevel, got.GetLogLevel())
	require.Equal(t, time.Second, got.ProvidedRetryWait())
}

func TestConfigFileMissing(t *testing.T) {
	// a missing file surfaces a read file error
	_, err := NewConfigFromFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
	require.Equal(t, CodeReadFile, err.Code())
	require.Equal(t, MainModule, err.Module())
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected int32
	}{
		{name: "debug", level: "debug", expected: DebugLevel},
		{name: "info", level: "info", expected: InfoLevel},
		{name: "warn", level: "warning", expected: WarnLevel},
		{name: "error", level: "error", expected: ErrorLevel},
		{name: "unknownDefaultsToInfo", level: "verbose", expected: InfoLevel},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, MainConfig{LogLevel: test.level}.GetLogLevel())
		})
	}
}

func TestIsNonRecoverable(t *testing.T) {
	// a safety violation code in the tributary module is non-recoverable
	require.True(t, IsNonRecoverable(NewError(CodeSafetyViolation, TributaryModule, "halt")))
	// the same code number in another module is not
	require.False(t, IsNonRecoverable(NewError(CodeSafetyViolation, MainModule, "other")))
	// ordinary errors are recoverable
	require.False(t, IsNonRecoverable(ErrReadFile(errors.New("io"))))
	require.False(t, IsNonRecoverable(nil))
}
