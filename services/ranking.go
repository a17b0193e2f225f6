package services

import (
	"math"

	"github.com/Dosada05/tournament-api/models"
)

// RankOf возвращает 1-based позицию игрока в уже упорядоченном списке или nil.
func RankOf(ordered []models.Player, playerID int) *int {
	for i, p := range ordered {
		if p.ID == playerID {
			rank := i + 1
			return &rank
		}
	}
	return nil
}

// AssignRanks проставляет позиции игрокам уже упорядоченного списка.
func AssignRanks(ordered []models.Player) []models.RankedPlayer {
	ranked := make([]models.RankedPlayer, len(ordered))
	for i, p := range ordered {
		ranked[i] = models.RankedPlayer{Player: p, Rank: i + 1}
	}
	return ranked
}

// WinRate = wins/matches*100, округлённый до двух знаков; 0 при отсутствии матчей.
func WinRate(wins, matches int) float64 {
	if matches <= 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(matches)*100*100) / 100
}
