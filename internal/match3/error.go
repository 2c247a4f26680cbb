package match3

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrNotAdjacent     = errors.New("positions are not adjacent")
	ErrGameOver        = errors.New("game is over")
	ErrToolUnavailable = errors.New("tool not available")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrLevelNotWon     = errors.New("level is not won yet")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// ConfigError reports input rejected at construction time.
type ConfigError struct {
	Field   string
	Message string
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// [*ConfigError] implements [error]
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
