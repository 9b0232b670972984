package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"belote/game"
)

// TableConfig holds the settings of a single bidding table.
type TableConfig struct {
	// TurnTimeoutSeconds is how long a seat may think before it is passed
	// automatically. Zero disables the timer.
	TurnTimeoutSeconds int    `json:"turn_timeout_seconds"`
	Seed               int64  `json:"seed"` // 0 means unseeded
	Port               string `json:"port"`
	FirstDealer        int    `json:"first_dealer"`
}

// DefaultTableConfig returns the settings used when no file is given.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		TurnTimeoutSeconds: 30,
		Port:               "8080",
		FirstDealer:        0,
	}
}

// TurnTimeout returns the turn timer duration.
func (c TableConfig) TurnTimeout() time.Duration {
	return time.Duration(c.TurnTimeoutSeconds) * time.Second
}

// Validate checks the values a table cannot start with.
func (c TableConfig) Validate() error {
	if c.TurnTimeoutSeconds < 0 {
		return fmt.Errorf("%w: negative turn timeout %d", game.ErrValidation, c.TurnTimeoutSeconds)
	}
	if !game.Position(c.FirstDealer).Valid() {
		return fmt.Errorf("%w: first dealer %d", game.ErrInvalidPosition, c.FirstDealer)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: empty port", game.ErrValidation)
	}
	return nil
}

// ReadTableConfig reads a config file on top of the defaults. A missing
// file yields the defaults.
func ReadTableConfig(path string) (TableConfig, error) {
	c := DefaultTableConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("failed to read table config: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to unmarshal table config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

var (
	cfg      *TableConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadTableConfig loads the process-wide table configuration from path.
// Only the first call reads the file.
func LoadTableConfig(path string) error {
	loadOnce.Do(func() {
		c, err := ReadTableConfig(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetTableConfig returns the loaded configuration, or the defaults if
// LoadTableConfig has not succeeded.
func GetTableConfig() TableConfig {
	if cfg == nil {
		return DefaultTableConfig()
	}
	return *cfg
}
