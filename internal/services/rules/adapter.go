package rules

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/chessroom-go/internal/chess"
	"github.com/mcoot/chessroom-go/internal/model"
)

// Transition is the result of applying one move token: the canonical
// token actually recorded, the new position, whose turn it now is, and
// whether the game ended.
type Transition struct {
	Canonical string
	Position  string // FEN after the move
	Turn      model.Seat
	Ended     bool
	Outcome   model.Outcome
	Reason    chess.TerminalReason
}

// Adapter wraps the rules engine behind the move-intake contract:
// parse, validate, apply and terminal-check as a single unit of work.
type Adapter struct {
	logger *slog.Logger
}

// New creates a rules adapter
func New(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger.With(slog.String("component", "rules-adapter"))}
}

// InitialPosition returns the position new rooms start from.
func (a *Adapter) InitialPosition() string {
	return chess.InitialFEN
}

// SideToMove reports which seat owns the turn in the given position.
func (a *Adapter) SideToMove(fen string) (model.Seat, error) {
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return "", fmt.Errorf("parsing position: %w", err)
	}
	return seatForColor(pos.Turn), nil
}

// ApplyToken replays the room's history, then parses and applies the
// candidate token against the resulting position. Notation failures
// surface as model.ErrInvalidNotation, legality failures as
// model.ErrInvalidMove; both leave the caller's state untouched.
func (a *Adapter) ApplyToken(history []string, token string) (*Transition, error) {
	game, err := chess.GameFromHistory(history)
	if err != nil {
		return nil, fmt.Errorf("replaying move history: %w", err)
	}

	canonical, err := game.Push(token)
	if err != nil {
		switch {
		case errors.Is(err, chess.ErrNotation):
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidNotation, token)
		case errors.Is(err, chess.ErrIllegal):
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidMove, token)
		default:
			return nil, err
		}
	}

	t := &Transition{
		Canonical: canonical,
		Position:  game.Position().FEN(),
		Turn:      seatForColor(game.Position().Turn),
	}

	if result := game.Terminal(); result.Ended {
		t.Ended = true
		t.Reason = result.Reason
		if result.Draw {
			t.Outcome = model.OutcomeDraw
		} else {
			t.Outcome = model.WinnerOutcome(seatForColor(result.Winner))
		}
		a.logger.Debug("terminal position reached",
			slog.String("reason", string(result.Reason)),
			slog.String("outcome", string(t.Outcome)),
		)
	}

	return t, nil
}

// Replay rebuilds the position a move history leads to. Used to verify
// that a stored position cache has not diverged from its history.
func (a *Adapter) Replay(history []string) (string, error) {
	game, err := chess.GameFromHistory(history)
	if err != nil {
		return "", fmt.Errorf("replaying move history: %w", err)
	}
	return game.Position().FEN(), nil
}

// LegalMoves lists the legal moves of a position in coordinate notation.
// The random engine mover picks from this list.
func (a *Adapter) LegalMoves(fen string) ([]string, error) {
	pos, err := chess.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parsing position: %w", err)
	}
	moves := pos.LegalMoves()
	tokens := make([]string, len(moves))
	for i, m := range moves {
		tokens[i] = m.UCI()
	}
	return tokens, nil
}

func seatForColor(c chess.Color) model.Seat {
	if c == chess.White {
		return model.SeatWhite
	}
	return model.SeatBlack
}
