package services

import (
	"errors"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// Errors shared by the services and mapped to HTTP statuses by the handlers.
var (
	// The store could not be reached. Never retried here.
	ErrStoreUnavailable = repositories.ErrStoreUnavailable
	// A pairing was requested for an odd number of players.
	ErrOddPlayerCount = brackets.ErrOddPlayerCount

	// Match report naming an unknown player, or the same player twice.
	ErrInvalidMatch = errors.New("invalid match")

	ErrValidationFailed   = errors.New("validation failed")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameTooLong  = errors.New("player name is too long")
	ErrPlayersHaveMatches = errors.New("players cannot be deleted while matches are recorded")

	ErrInvalidCredentials = errors.New("invalid organizer password")
	ErrLoginDisabled      = errors.New("organizer login is not configured")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)
