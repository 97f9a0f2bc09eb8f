package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrTeamNotFound    = errors.New("team not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPenaltyNotFound = errors.New("penalty not found")

	// Validation errors
	ErrNameRequired         = errors.New("name is required")
	ErrPlayerNumberRequired = errors.New("player number is required")
	ErrScorerNumberRequired = errors.New("scorer number is required")
	ErrNoPlayers            = errors.New("team has no players")
	ErrInvalidStat          = errors.New("stat is not valid for this player")
	ErrInvalidSide          = errors.New("side must be US or THEM")
	ErrInvalidPenaltyType   = errors.New("invalid penalty type")
	ErrNotMinorPenalty      = errors.New("only minor penalties can be released early")
	ErrPenaltyServed        = errors.New("penalty has already been served")

	// Storage errors
	ErrUnknownEventType = errors.New("unknown event type")
)
