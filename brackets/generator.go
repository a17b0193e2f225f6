package brackets

import "errors"

var (
	ErrNotEnoughPlayers = errors.New("at least two players are required to build a schedule")
	ErrDuplicatePlayer  = errors.New("player ids must be distinct")
	ErrInvalidLegs      = errors.New("legs must be 1 or 2")
)

// Pairing - одна встреча расписания.
type Pairing struct {
	Round     int
	Player1ID int
	Player2ID int
}

type Generator interface {
	Generate(playerIDs []int) ([]Pairing, error)

	Name() string
}
