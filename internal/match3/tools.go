package match3

import (
	"fmt"
	"strings"
)

type Tool int8

const (
	ToolBomb Tool = iota
	ToolShuffle
)

func (t Tool) String() string {
	switch t {
	case ToolBomb:
		return "bomb"
	case ToolShuffle:
		return "shuffle"
	}
	return "invalid"
}

func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(s) {
	case "bomb", "b":
		return ToolBomb, nil
	case "shuffle", "x":
		return ToolShuffle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

const (
	DefaultBombs    = 3
	DefaultShuffles = 2
)

// Inventory holds per-level consumable counters. Counters never go negative.
type Inventory struct {
	Bombs    int `json:"bombs"`
	Shuffles int `json:"shuffles"`
}

func NewInventory() Inventory {
	return Inventory{Bombs: DefaultBombs, Shuffles: DefaultShuffles}
}

func (inv *Inventory) counter(t Tool) (*int, error) {
	switch t {
	case ToolBomb:
		return &inv.Bombs, nil
	case ToolShuffle:
		return &inv.Shuffles, nil
	}
	return nil, ErrUnknownTool
}

func (inv Inventory) Available(t Tool) bool {
	n, err := inv.counter(t)
	return err == nil && *n > 0
}

// Use decrements the counter for t, failing when none are left.
func (inv *Inventory) Use(t Tool) error {
	n, err := inv.counter(t)
	if err != nil {
		return err
	}
	if *n <= 0 {
		return fmt.Errorf("%w: no %s left", ErrToolUnavailable, t)
	}
	*n--
	return nil
}
