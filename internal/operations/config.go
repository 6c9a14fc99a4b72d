package operations

import (
	"time"
)

// Config represents the operation execution configuration
type Config struct {
	// Default timeout applied to every step
	StageTimeout time.Duration `json:"stage_timeout"`

	// Step-specific timeouts
	StageTimeouts map[string]time.Duration `json:"stage_timeouts"`
}

// NewConfig returns the default operation configuration
func NewConfig() *Config {
	return &Config{
		StageTimeout:  DefaultStageTimeout,
		StageTimeouts: make(map[string]time.Duration),
	}
}

// GetStageTimeout returns the timeout for a specific Step
func (c *Config) GetStageTimeout(stageID string) time.Duration {
	if timeout, ok := c.StageTimeouts[stageID]; ok && timeout > 0 {
		return timeout
	}
	if c.StageTimeout > 0 {
		return c.StageTimeout
	}
	return DefaultStageTimeout
}

// SetStageTimeout sets the timeout for a specific Step
func (c *Config) SetStageTimeout(stageID string, timeout time.Duration) {
	if c.StageTimeouts == nil {
		c.StageTimeouts = make(map[string]time.Duration)
	}
	c.StageTimeouts[stageID] = timeout
}
