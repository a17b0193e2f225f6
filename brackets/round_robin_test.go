package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func TestRoundRobinSingleLeg(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 8} {
		ids := make([]int, n)
		for i := range ids {
			ids[i] = 100 + i
		}

		g, err := NewRoundRobinGenerator(1)
		require.NoError(t, err)
		pairings, err := g.Generate(ids)
		require.NoError(t, err)

		assert.Len(t, pairings, n*(n-1)/2, "players=%d", n)

		pairs := make(map[[2]int]int)
		perRound := make(map[int]map[int]bool)
		maxRound := 0
		for _, p := range pairings {
			assert.NotEqual(t, p.Player1ID, p.Player2ID)
			pairs[pairKey(p.Player1ID, p.Player2ID)]++

			if perRound[p.Round] == nil {
				perRound[p.Round] = make(map[int]bool)
			}
			assert.False(t, perRound[p.Round][p.Player1ID], "player %d twice in round %d", p.Player1ID, p.Round)
			assert.False(t, perRound[p.Round][p.Player2ID], "player %d twice in round %d", p.Player2ID, p.Round)
			perRound[p.Round][p.Player1ID] = true
			perRound[p.Round][p.Player2ID] = true
			if p.Round > maxRound {
				maxRound = p.Round
			}
		}
		for _, count := range pairs {
			assert.Equal(t, 1, count)
		}

		wantRounds := n - 1
		if n%2 == 1 {
			wantRounds = n
		}
		assert.Equal(t, wantRounds, maxRound, "players=%d", n)
	}
}

func TestRoundRobinDoubleLeg(t *testing.T) {
	g, err := NewRoundRobinGenerator(2)
	require.NoError(t, err)

	pairings, err := g.Generate([]int{1, 2, 3, 4})
	require.NoError(t, err)
	require.Len(t, pairings, 12)

	sides := make(map[[2]int]bool)
	for _, p := range pairings {
		key := [2]int{p.Player1ID, p.Player2ID}
		assert.False(t, sides[key], "same home/away twice: %v", key)
		sides[key] = true
	}
	assert.Equal(t, 4, pairings[6].Round)
	assert.Equal(t, 6, pairings[len(pairings)-1].Round)
}

func TestRoundRobinErrors(t *testing.T) {
	_, err := NewRoundRobinGenerator(3)
	assert.ErrorIs(t, err, ErrInvalidLegs)

	g, err := NewRoundRobinGenerator(1)
	require.NoError(t, err)
	assert.Equal(t, "RoundRobin", g.Name())

	_, err = g.Generate([]int{1})
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	_, err = g.Generate([]int{1, 2, 1})
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
	_, err = g.Generate([]int{0, 2})
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
}
