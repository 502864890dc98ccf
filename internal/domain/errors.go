package domain

import "errors"

// Trade validation errors. A rejected trade never changes state; the HTTP
// layer surfaces these to the player, the engine treats them as no-ops.
var (
	ErrInsufficientCash  = errors.New("insufficient cash")
	ErrInsufficientUnits = errors.New("insufficient holdings to sell")
	ErrInsufficientShort = errors.New("insufficient short position to cover")
	ErrInvalidUnits      = errors.New("units must be positive")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrUnknownTradeSide  = errors.New("unknown trade side")
	ErrGameOver          = errors.New("game is over")
	ErrGameNotRunning    = errors.New("game is not running")
)
