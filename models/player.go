package models

import "time"

// Player - участник конкретного турнира. Счётчики меняются только при завершении матча.
type Player struct {
	ID           int       `json:"id" db:"id"`
	UserID       *int      `json:"user_id" db:"user_id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Email        *string   `json:"email" db:"email"`
	Gamertag     string    `json:"gamertag" db:"gamertag"`
	TotalScore   int       `json:"total_score" db:"total_score"`
	Wins         int       `json:"wins" db:"wins"`
	Losses       int       `json:"losses" db:"losses"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Matches []PlayerMatch `json:"matches,omitempty" db:"-"`
}

// RankedPlayer is a leaderboard row.
type RankedPlayer struct {
	Player
	Rank int `json:"rank"`
}
