package config

import (
	"github.com/vancomm/match3-server/internal/match3"
)

// NewGameDefaults reads the board defaults applied to new games whose
// request leaves them out.
func NewGameDefaults() (match3.GameParams, error) {
	var (
		params match3.GameParams
		err    error
	)
	if params.Width, err = lookupInt("BOARD_WIDTH", match3.DefaultWidth); err != nil {
		return params, err
	}
	if params.Height, err = lookupInt("BOARD_HEIGHT", match3.DefaultHeight); err != nil {
		return params, err
	}
	if params.GemTypes, err = lookupInt("GEM_TYPES", 0); err != nil {
		return params, err
	}
	params.Level = 1
	return params, params.Validate()
}
