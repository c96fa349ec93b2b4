package opponent

import (
	"context"
	"time"

	"github.com/mcoot/chessroom-go/internal/dependencies/random"
	"github.com/mcoot/chessroom-go/internal/services/rules"
)

// RandomMover plays a uniformly random legal move. It backs single-player
// rooms when no UCI engine is configured, and gives tests a deterministic
// opponent via the mockable random source.
type RandomMover struct {
	rules  *rules.Adapter
	random random.Random
}

// NewRandomMover creates a new RandomMover
func NewRandomMover(rulesAdapter *rules.Adapter, rnd random.Random) *RandomMover {
	return &RandomMover{rules: rulesAdapter, random: rnd}
}

var _ Mover = (*RandomMover)(nil)

// BestMove picks a random legal move, ignoring the time budget.
func (m *RandomMover) BestMove(ctx context.Context, fen string, budget time.Duration) (string, error) {
	moves, err := m.rules.LegalMoves(fen)
	if err != nil {
		return "", err
	}
	if len(moves) == 0 {
		return "", nil
	}
	return moves[m.random.Intn(len(moves))], nil
}
