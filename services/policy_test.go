package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/tournament-api/models"
)

func TestPolicies(t *testing.T) {
	owner, registrant, stranger := 1, 2, 3
	tournament := &models.Tournament{ID: 10, UserID: owner}
	player := &models.Player{ID: 20, TournamentID: 10, UserID: &registrant}
	anonymous := &models.Player{ID: 21, TournamentID: 10}

	assert.True(t, CanManageTournament(owner, tournament))
	assert.False(t, CanManageTournament(stranger, tournament))
	assert.False(t, CanManageTournament(0, &models.Tournament{}))
	assert.False(t, CanManageTournament(owner, nil))

	assert.True(t, CanManagePlayer(registrant, player, tournament))
	assert.True(t, CanManagePlayer(owner, player, tournament))
	assert.False(t, CanManagePlayer(stranger, player, tournament))
	assert.False(t, CanManagePlayer(registrant, anonymous, tournament))
	assert.False(t, CanManagePlayer(owner, nil, tournament))

	assert.True(t, CanManageMatch(owner, tournament))
	assert.False(t, CanManageMatch(registrant, tournament))
}
