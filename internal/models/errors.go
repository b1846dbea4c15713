package models

import "errors"

// Custom errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrInvalidID           = errors.New("invalid ID format")
	ErrFixtureCount        = errors.New("exactly 17 fixtures required")
	ErrJackpotNameRequired = errors.New("jackpot name is required")
	ErrJackpotClosed       = errors.New("jackpot is closed")
)
