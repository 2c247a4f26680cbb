package config

import (
	"fmt"
	"time"
)

// Store controls how long abandoned game sessions stay in memory.
type Store struct {
	Idle          time.Duration
	SweepInterval time.Duration
}

func NewStore() (*Store, error) {
	idle, err := lookupDuration("SESSION_IDLE", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	interval, err := lookupDuration("SESSION_SWEEP", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	if idle <= 0 || interval <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE and SESSION_SWEEP must be positive")
	}
	return &Store{Idle: idle, SweepInterval: interval}, nil
}
