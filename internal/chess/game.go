package chess

import "fmt"

// TerminalReason names the condition that ended a game
type TerminalReason string

const (
	ReasonCheckmate            TerminalReason = "checkmate"
	ReasonStalemate            TerminalReason = "stalemate"
	ReasonInsufficientMaterial TerminalReason = "insufficient_material"
	ReasonRepetition           TerminalReason = "threefold_repetition"
	ReasonFiftyMove            TerminalReason = "fifty_move_rule"
)

// Result classifies whether and how a position is terminal
type Result struct {
	Ended  bool
	Draw   bool
	Winner Color // meaningful only when Ended and not Draw
	Reason TerminalReason
}

// Game tracks a position together with the repetition history needed for
// threefold-repetition detection, which a single position cannot carry.
type Game struct {
	pos       *Position
	moves     []string
	keyCounts map[string]int
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	pos, _ := ParseFEN(InitialFEN)
	g := &Game{pos: pos, keyCounts: map[string]int{}}
	g.keyCounts[pos.RepetitionKey()] = 1
	return g
}

// GameFromHistory rebuilds a game by replaying a move token sequence
// from the initial position.
func GameFromHistory(moves []string) (*Game, error) {
	g := NewGame()
	for i, token := range moves {
		if _, err := g.Push(token); err != nil {
			return nil, fmt.Errorf("replaying move %d (%q): %w", i+1, token, err)
		}
	}
	return g, nil
}

// Position returns the current position.
func (g *Game) Position() *Position {
	return g.pos
}

// Moves returns the canonical SAN tokens played so far.
func (g *Game) Moves() []string {
	return g.moves
}

// Push parses and plays one move token, returning the canonical SAN for
// the move actually applied.
func (g *Game) Push(token string) (string, error) {
	move, err := g.pos.ParseMove(token)
	if err != nil {
		return "", err
	}
	canonical := g.pos.SAN(move)
	g.pos = g.pos.Apply(move)
	g.moves = append(g.moves, canonical)
	g.keyCounts[g.pos.RepetitionKey()]++
	return canonical, nil
}

// Terminal classifies the current position. When several conditions hold
// at once the precedence is checkmate, stalemate, insufficient material,
// threefold repetition, then the fifty-move rule; checkmate and
// stalemate are judged from the side to move.
func (g *Game) Terminal() Result {
	pos := g.pos

	if len(pos.LegalMoves()) == 0 {
		if pos.InCheck(pos.Turn) {
			return Result{Ended: true, Winner: pos.Turn.Other(), Reason: ReasonCheckmate}
		}
		return Result{Ended: true, Draw: true, Reason: ReasonStalemate}
	}

	if pos.InsufficientMaterial() {
		return Result{Ended: true, Draw: true, Reason: ReasonInsufficientMaterial}
	}

	if g.keyCounts[pos.RepetitionKey()] >= 3 {
		return Result{Ended: true, Draw: true, Reason: ReasonRepetition}
	}

	if pos.HalfmoveClock >= 100 {
		return Result{Ended: true, Draw: true, Reason: ReasonFiftyMove}
	}

	return Result{}
}
