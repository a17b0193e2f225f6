package models

// PlayerStats - статистика игрока внутри турнира.
type PlayerStats struct {
	Player     *Player `json:"player"`
	MatchCount int     `json:"match_count"`
	WinRate    float64 `json:"win_rate"`
	Rank       *int    `json:"rank"`
}

// ProfileStats - сводная статистика пользователя по всем его турнирам и игрокам.
type ProfileStats struct {
	TournamentsCreated   int     `json:"tournaments_created"`
	TournamentsCompleted int     `json:"tournaments_completed"`
	TotalMatches         int     `json:"total_matches"`
	TotalWins            int     `json:"total_wins"`
	TotalScore           int     `json:"total_score"`
	WinRate              float64 `json:"win_rate"`
}
