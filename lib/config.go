package lib

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

/* This file implements logic for 'user controlled' configuration of the tributary adapter */

const (
	// FILE NAMES in the 'data directory'
	ConfigFilePath = "config.json" // the file path for the node configuration
)

// Config is the structure of the user configuration options for a tributary validator
type Config struct {
	MainConfig      // main options spanning over all modules
	ConsensusConfig // engine timing and commit retry options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:      DefaultMainConfig(),
		ConsensusConfig: DefaultConsensusConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel    string `json:"logLevel"`    // any level includes the levels above it: debug < info < warning < error
	DataDirPath string `json:"dataDirPath"` // path of the designated folder where the adapter stores its logs and keys
}

// DefaultMainConfig() sets log level to 'info' and the data dir to the default path
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel:    "info",
		DataDirPath: DefaultDataDirPath(),
	}
}

// GetLogLevel() parses the configured string into a logger level
func (m MainConfig) GetLogLevel() int32 {
	switch {
	case strings.Contains(strings.ToLower(m.LogLevel), "deb"):
		return DebugLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "inf"):
		return InfoLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "war"):
		return WarnLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "err"):
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// CONSENSUS CONFIG BELOW

// ConsensusConfig declares the static timing parameters the adapter hands to the
// consensus engine and the wait applied between block commitment retries
type ConsensusConfig struct {
	BlockProcessingTimeMS int `json:"blockProcessingTimeMS"` // expected time (in milliseconds) to validate and apply one block, used by the engine to size round timeouts
	LatencyTimeMS         int `json:"latencyTimeMS"`         // expected one-way network latency (in milliseconds), used by the engine to size round timeouts
	ProvidedRetryWaitMS   int `json:"providedRetryWaitMS"`   // how long (in milliseconds) to wait before re-attempting commitment of a block referencing a not-yet-received provided transaction
}

// DefaultConsensusConfig() configures the engine timing constants
func DefaultConsensusConfig() ConsensusConfig {
	return ConsensusConfig{
		BlockProcessingTimeMS: 3000,  // 3 seconds
		LatencyTimeMS:         1000,  // 1 second
		ProvidedRetryWaitMS:   30000, // 30 seconds between provided transaction retries
	}
}

// BlockProcessingTime() returns the expected block processing duration
func (c ConsensusConfig) BlockProcessingTime() time.Duration {
	return time.Duration(c.BlockProcessingTimeMS) * time.Millisecond
}

// LatencyTime() returns the expected network latency duration
func (c ConsensusConfig) LatencyTime() time.Duration {
	return time.Duration(c.LatencyTimeMS) * time.Millisecond
}

// ProvidedRetryWait() returns the wait applied between commitment retries
func (c ConsensusConfig) ProvidedRetryWait() time.Duration {
	return time.Duration(c.ProvidedRetryWaitMS) * time.Millisecond
}

// DefaultDataDirPath() is $USERHOME/.tributary
func DefaultDataDirPath() string {
	// get the user home
	home, err := os.UserHomeDir()
	// if unable to get the user home
	if err != nil {
		// fatal error
		panic(err)
	}
	// exit with full default data directory path
	return filepath.Join(home, ".tributary")
}

// WriteToFile() saves the Config object to a JSON file
func (c Config) WriteToFile(filePath string) error {
	// convert the config to indented 'pretty' json bytes
	jsonBytes, err := json.MarshalIndent(c, "", "  ")
	// if an error occurred during the conversion
	if err != nil {
		// exit with the error
		return err
	}
	// write the json bytes to the file
	return os.WriteFile(filePath, jsonBytes, os.ModePerm)
}

// NewConfigFromFile() populates a Config object from a JSON file
func NewConfigFromFile(filePath string) (Config, ErrorI) {
	// read the file at the path
	fileBytes, err := os.ReadFile(filePath)
	// if an error occurred during the read
	if err != nil {
		// exit with a read file error
		return Config{}, ErrReadFile(err)
	}
	// start with the default config to backfill any omitted options
	c := DefaultConfig()
	// populate the config with the file bytes
	if err = json.Unmarshal(fileBytes, &c); err != nil {
		// exit with a json error
		return Config{}, ErrJSONUnmarshal(err)
	}
	// exit with the populated config
	return c, nil
}
