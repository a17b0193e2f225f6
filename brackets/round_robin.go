package brackets

// bye - пустое место для нечётного числа игроков; пара с ним пропускается.
const bye = 0

type RoundRobinGenerator struct {
	legs int
}

// NewRoundRobinGenerator: legs=1 - каждый играет с каждым один раз, legs=2 - дважды со сменой сторон.
func NewRoundRobinGenerator(legs int) (Generator, error) {
	if legs != 1 && legs != 2 {
		return nil, ErrInvalidLegs
	}
	return &RoundRobinGenerator{legs: legs}, nil
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate строит расписание круговым методом: первый игрок неподвижен, остальные вращаются.
// В каждом раунде игрок встречается не больше одного раза.
func (g *RoundRobinGenerator) Generate(playerIDs []int) ([]Pairing, error) {
	if len(playerIDs) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	seen := make(map[int]struct{}, len(playerIDs))
	slots := make([]int, 0, len(playerIDs)+1)
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup || id == bye {
			return nil, ErrDuplicatePlayer
		}
		seen[id] = struct{}{}
		slots = append(slots, id)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, bye)
	}

	n := len(slots)
	roundsPerLeg := n - 1
	pairings := make([]Pairing, 0, g.legs*len(playerIDs)*(len(playerIDs)-1)/2)

	for round := 0; round < roundsPerLeg; round++ {
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == bye || away == bye {
				continue
			}
			// чередуем стороны у неподвижного игрока
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			pairings = append(pairings, Pairing{Round: round + 1, Player1ID: home, Player2ID: away})
		}

		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	if g.legs == 2 {
		firstLeg := len(pairings)
		for _, p := range pairings[:firstLeg] {
			pairings = append(pairings, Pairing{
				Round:     p.Round + roundsPerLeg,
				Player1ID: p.Player2ID,
				Player2ID: p.Player1ID,
			})
		}
	}

	return pairings, nil
}
