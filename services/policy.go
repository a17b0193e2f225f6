package services

import "github.com/Dosada05/tournament-api/models"

// CanManageTournament: изменять и удалять турнир может только его владелец.
func CanManageTournament(userID int, t *models.Tournament) bool {
	return t != nil && userID > 0 && t.UserID == userID
}

// CanManagePlayer: игрока может изменять или удалять тот, кто его зарегистрировал, либо владелец турнира.
func CanManagePlayer(userID int, p *models.Player, t *models.Tournament) bool {
	if p == nil || userID <= 0 {
		return false
	}
	if p.UserID != nil && *p.UserID == userID {
		return true
	}
	return CanManageTournament(userID, t)
}

// CanManageMatch: создавать, менять, удалять матчи и вносить счёт может только владелец турнира.
func CanManageMatch(userID int, t *models.Tournament) bool {
	return CanManageTournament(userID, t)
}
