package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound     = errors.New("team not found")
	ErrInvalidLimit = errors.New("invalid standings limit")
	ErrInvalidGame  = errors.New("invalid game")
	ErrStore        = errors.New("result store")
)
