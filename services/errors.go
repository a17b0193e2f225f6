package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed    = errors.New("validation failed")
	ErrInvalidMatchPlayers = errors.New("a match requires exactly two distinct players of the tournament")
	ErrPlayerNotInMatch    = errors.New("one of the players is not in this match")
	ErrInvalidScore        = errors.New("invalid score list")
	ErrRegistrationNotOpen = errors.New("tournament registration is not open")
	ErrTournamentFull      = errors.New("maximum number of players reached")

	// Ошибки конфликтов
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrMatchResultsRecorded = errors.New("match results have already been recorded")
	ErrScheduleExists       = errors.New("tournament already has matches")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound          = errors.New("user not found")
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrMatchNotFound         = errors.New("match not found")
	ErrPlayerNotInTournament = errors.New("player not found in this tournament")
	ErrMatchNotInTournament  = errors.New("match not found in this tournament")
)
