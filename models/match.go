package models

import "time"

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusInProgress, MatchStatusCompleted:
		return true
	}
	return false
}

// Match - встреча двух игроков одного турнира.
// ResultsRecordedAt выставляется один раз, когда статистика игроков учтена.
type Match struct {
	ID                int         `json:"id" db:"id"`
	TournamentID      int         `json:"tournament_id" db:"tournament_id"`
	Round             int         `json:"round" db:"round"`
	MatchDate         *time.Time  `json:"match_date" db:"match_date"`
	Status            MatchStatus `json:"status" db:"status"`
	WinnerPlayerID    *int        `json:"winner_player_id" db:"winner_player_id"`
	ResultsRecordedAt *time.Time  `json:"results_recorded_at" db:"results_recorded_at"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`

	Players []MatchPlayer `json:"players,omitempty" db:"-"`
}

// MatchPlayer - игрок матча вместе с его счётом в этом матче.
type MatchPlayer struct {
	Player
	MatchID int `json:"match_id" db:"match_id"`
	Score   int `json:"score" db:"score"`
}

// PlayerMatch - матч игрока вместе с его счётом в этом матче.
type PlayerMatch struct {
	Match
	Score int `json:"score" db:"score"`
}

// Participation - строка таблицы match_player.
type Participation struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ScoreEntry - один элемент запроса на обновление счёта.
type ScoreEntry struct {
	PlayerID int `json:"player_id"`
	Score    int `json:"score"`
}
