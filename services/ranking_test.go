package services

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-api/models"
)

// sortForRanking повторяет порядок ORDER BY wins DESC, total_score DESC, id ASC.
func sortForRanking(players []models.Player) {
	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return a.ID < b.ID
	})
}

func TestRankOf(t *testing.T) {
	ordered := []models.Player{{ID: 4}, {ID: 2}, {ID: 9}}

	rank := RankOf(ordered, 2)
	require.NotNil(t, rank)
	assert.Equal(t, 2, *rank)

	assert.Nil(t, RankOf(ordered, 100))
	assert.Nil(t, RankOf(nil, 1))
}

func TestRankingConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		players := make([]models.Player, 12)
		for i := range players {
			players[i] = models.Player{
				ID:         i + 1,
				Wins:       rng.Intn(4),
				TotalScore: rng.Intn(6),
			}
		}
		rng.Shuffle(len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })
		sortForRanking(players)

		ranked := AssignRanks(players)
		require.Len(t, ranked, len(players))
		for i, rp := range ranked {
			assert.Equal(t, i+1, rp.Rank)
			rank := RankOf(players, rp.ID)
			require.NotNil(t, rank)
			assert.Equal(t, rp.Rank, *rank)

			if i > 0 {
				prev := ranked[i-1]
				assert.True(t,
					prev.Wins > rp.Wins ||
						(prev.Wins == rp.Wins && prev.TotalScore > rp.TotalScore) ||
						(prev.Wins == rp.Wins && prev.TotalScore == rp.TotalScore && prev.ID < rp.ID),
					"players %d and %d out of order", prev.ID, rp.ID)
			}
		}
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		wins, matches int
		want          float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 1, 100},
		{1, 2, 50},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 5, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WinRate(tt.wins, tt.matches), "WinRate(%d, %d)", tt.wins, tt.matches)
	}
}
