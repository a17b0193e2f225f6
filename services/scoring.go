package services

import (
	"fmt"

	"github.com/Dosada05/tournament-api/models"
)

// PlayerResult - изменение статистики одного участника после завершения матча.
type PlayerResult struct {
	PlayerID int
	Score    int
	Won      bool
}

// DetermineWinner возвращает игрока со строго наибольшим счётом.
// При равенстве побеждает тот, кто встретился в списке первым.
func DetermineWinner(scores []models.ScoreEntry) (int, bool) {
	winner, maxScore, found := 0, -1, false
	for _, s := range scores {
		if s.Score > maxScore {
			maxScore = s.Score
			winner = s.PlayerID
			found = true
		}
	}
	return winner, found
}

// FoldMatchResult считает изменения статистики для всех участников матча по их сохранённому счёту.
func FoldMatchResult(participants []models.Participation, winnerID int) []PlayerResult {
	results := make([]PlayerResult, 0, len(participants))
	for _, p := range participants {
		results = append(results, PlayerResult{
			PlayerID: p.PlayerID,
			Score:    p.Score,
			Won:      p.PlayerID == winnerID,
		})
	}
	return results
}

// validateScores проверяет список счёта до любых записей в БД.
func validateScores(scores []models.ScoreEntry) error {
	v := newValidator()
	v.check(len(scores) > 0, "scores", "The scores field is required.")

	seen := make(map[int]struct{}, len(scores))
	for _, s := range scores {
		v.check(s.PlayerID > 0, "scores.player_id", "The player id must be a positive integer.")
		v.check(s.Score >= 0, "scores.score", "The score must be at least 0.")
		v.check(s.Score <= maxIntColumn, "scores.score", fmt.Sprintf("The score may not be greater than %d.", maxIntColumn))
		if _, dup := seen[s.PlayerID]; dup {
			v.check(false, "scores.player_id", "The player ids must be distinct.")
		}
		seen[s.PlayerID] = struct{}{}
	}
	return v.err()
}

// checkParticipants убеждается, что каждый игрок из списка уже участвует в матче.
func checkParticipants(scores []models.ScoreEntry, participants []models.Participation) error {
	inMatch := make(map[int]struct{}, len(participants))
	for _, p := range participants {
		inMatch[p.PlayerID] = struct{}{}
	}
	for _, s := range scores {
		if _, ok := inMatch[s.PlayerID]; !ok {
			return ErrPlayerNotInMatch
		}
	}
	return nil
}
