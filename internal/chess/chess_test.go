package chess

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ChessSuite struct {
	suite.Suite
}

func TestChessSuite(t *testing.T) {
	suite.Run(t, new(ChessSuite))
}

func (s *ChessSuite) mustParse(fen string) *Position {
	pos, err := ParseFEN(fen)
	s.Require().NoError(err)
	return pos
}

// FEN tests

func (s *ChessSuite) TestInitialFENRoundTrip() {
	pos := s.mustParse(InitialFEN)
	s.Equal(InitialFEN, pos.FEN())
}

func (s *ChessSuite) TestFENRoundTripMidgame() {
	fen := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	pos := s.mustParse(fen)
	s.Equal(fen, pos.FEN())
}

func (s *ChessSuite) TestParseFENRejectsGarbage() {
	_, err := ParseFEN("not a position")
	s.Error(err)

	_, err = ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1")
	s.Error(err)
}

// Move generation tests

func (s *ChessSuite) TestInitialPositionHasTwentyMoves() {
	pos := s.mustParse(InitialFEN)
	s.Len(pos.LegalMoves(), 20)
}

func (s *ChessSuite) TestPinnedPieceCannotMove() {
	// The e-file knight is pinned against the king by the rook
	pos := s.mustParse("4r2k/8/8/8/8/4N3/8/4K3 w - - 0 1")
	for _, m := range pos.LegalMoves() {
		if pos.Board[m.From].Kind() == Knight {
			s.Failf("pinned knight moved", "move %s", m.UCI())
		}
	}
}

func (s *ChessSuite) TestCastlingRequiresClearAndSafePath() {
	// All rights present, kingside clear for both sides
	pos := s.mustParse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	var sans []string
	for _, m := range pos.LegalMoves() {
		sans = append(sans, pos.SAN(m))
	}
	s.Contains(sans, "O-O")
	s.Contains(sans, "O-O-O")

	// A rook covering f1 forbids white kingside castling
	blocked := s.mustParse("r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1")
	for _, m := range blocked.LegalMoves() {
		s.NotEqual("O-O", blocked.SAN(m))
	}
}

// Apply tests

func (s *ChessSuite) TestApplyDoesNotMutateReceiver() {
	pos := s.mustParse(InitialFEN)
	move, err := pos.ParseMove("e4")
	s.Require().NoError(err)

	_ = pos.Apply(move)
	s.Equal(InitialFEN, pos.FEN())
}

func (s *ChessSuite) TestApplySetsEnPassantTarget() {
	pos := s.mustParse(InitialFEN)
	move, err := pos.ParseMove("e4")
	s.Require().NoError(err)

	next := pos.Apply(move)
	s.Equal("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", next.FEN())
}

func (s *ChessSuite) TestHalfmoveClockResetsOnPawnMoveAndCapture() {
	game := NewGame()
	for _, token := range []string{"Nf3", "Nf6"} {
		_, err := game.Push(token)
		s.Require().NoError(err)
	}
	s.Equal(2, game.Position().HalfmoveClock)

	_, err := game.Push("e4")
	s.Require().NoError(err)
	s.Equal(0, game.Position().HalfmoveClock)
}

// SAN tests

func (s *ChessSuite) TestCanonicalSANForSimpleMoves() {
	game := NewGame()
	for _, tc := range []struct {
		input     string
		canonical string
	}{
		{"e4", "e4"},
		{"e5", "e5"},
		{"Nf3", "Nf3"},
		{"Nc6", "Nc6"},
		{"Bb5", "Bb5"},
	} {
		got, err := game.Push(tc.input)
		s.Require().NoError(err)
		s.Equal(tc.canonical, got)
	}
}

func (s *ChessSuite) TestCoordinateNotationAccepted() {
	game := NewGame()
	got, err := game.Push("e2e4")
	s.Require().NoError(err)
	s.Equal("e4", got)
}

func (s *ChessSuite) TestDisambiguationByFile() {
	pos := s.mustParse("k7/8/8/8/8/8/8/1N2KN2 w - - 0 1")

	from, _ := parseSquare("b1")
	to, _ := parseSquare("d2")
	s.Equal("Nbd2", pos.SAN(Move{From: from, To: to}))
}

func (s *ChessSuite) TestAmbiguousTokenRejectedAsNotation() {
	pos := s.mustParse("k7/8/8/8/8/8/8/1N2KN2 w - - 0 1")

	_, err := pos.ParseMove("Nd2")
	s.ErrorIs(err, ErrNotation)

	move, err := pos.ParseMove("Nbd2")
	s.Require().NoError(err)
	s.Equal("b1", SquareName(move.From))
}

func (s *ChessSuite) TestIllegalWellFormedMove() {
	pos := s.mustParse(InitialFEN)
	_, err := pos.ParseMove("e5")
	s.ErrorIs(err, ErrIllegal)

	_, err = pos.ParseMove("Ke2")
	s.ErrorIs(err, ErrIllegal)
}

func (s *ChessSuite) TestUnreadableTokenRejected() {
	pos := s.mustParse(InitialFEN)
	for _, token := range []string{"", "hello there", "Z9", "e9"} {
		_, err := pos.ParseMove(token)
		s.ErrorIs(err, ErrNotation, "token %q", token)
	}
}

func (s *ChessSuite) TestEnPassantCapture() {
	game := NewGame()
	for _, token := range []string{"e4", "a6", "e5", "d5"} {
		_, err := game.Push(token)
		s.Require().NoError(err)
	}

	got, err := game.Push("exd6")
	s.Require().NoError(err)
	s.Equal("exd6", got)

	// The captured pawn is gone from d5
	pos := game.Position()
	d5, _ := parseSquare("d5")
	s.Equal(Piece(0), pos.Board[d5])
}

func (s *ChessSuite) TestPromotion() {
	pos := s.mustParse("8/P6k/8/8/8/8/8/K7 w - - 0 1")

	move, err := pos.ParseMove("a8=Q")
	s.Require().NoError(err)
	s.Equal(Queen, move.Promotion)

	next := pos.Apply(move)
	a8, _ := parseSquare("a8")
	s.Equal(makePiece(White, Queen), next.Board[a8])
}

func (s *ChessSuite) TestCastlingSAN() {
	game := NewGame()
	for _, token := range []string{"e4", "e5", "Nf3", "Nf6", "Bc4", "Bc5"} {
		_, err := game.Push(token)
		s.Require().NoError(err)
	}

	got, err := game.Push("O-O")
	s.Require().NoError(err)
	s.Equal("O-O", got)

	// The rook moved alongside the king
	f1, _ := parseSquare("f1")
	s.Equal(makePiece(White, Rook), game.Position().Board[f1])
}

// Terminal classification tests

func (s *ChessSuite) TestFoolsMate() {
	game := NewGame()
	for _, token := range []string{"f3", "e5", "g4"} {
		_, err := game.Push(token)
		s.Require().NoError(err)
	}

	got, err := game.Push("Qh4")
	s.Require().NoError(err)
	s.Equal("Qh4#", got)

	result := game.Terminal()
	s.True(result.Ended)
	s.False(result.Draw)
	s.Equal(Black, result.Winner)
	s.Equal(ReasonCheckmate, result.Reason)
}

func (s *ChessSuite) TestStalemate() {
	pos := s.mustParse("k7/2Q5/8/8/8/8/8/4K3 b - - 0 1")
	game := &Game{pos: pos, keyCounts: map[string]int{pos.RepetitionKey(): 1}}

	result := game.Terminal()
	s.True(result.Ended)
	s.True(result.Draw)
	s.Equal(ReasonStalemate, result.Reason)
}

func (s *ChessSuite) TestInsufficientMaterial() {
	for _, fen := range []string{
		"k7/8/8/8/8/8/8/7K w - - 0 1",
		"k7/8/8/8/8/8/8/5B1K w - - 0 1",
		"k7/8/8/8/8/8/8/5N1K b - - 0 1",
	} {
		pos := s.mustParse(fen)
		s.True(pos.InsufficientMaterial(), "fen %s", fen)

		game := &Game{pos: pos, keyCounts: map[string]int{pos.RepetitionKey(): 1}}
		result := game.Terminal()
		s.True(result.Ended)
		s.Equal(ReasonInsufficientMaterial, result.Reason)
	}

	queens := s.mustParse("k7/8/8/8/8/8/8/5Q1K w - - 0 1")
	s.False(queens.InsufficientMaterial())
}

func (s *ChessSuite) TestThreefoldRepetition() {
	game := NewGame()
	shuffle := []string{"Nf3", "Nf6", "Ng1", "Ng8"}
	for i := 0; i < 2; i++ {
		for _, token := range shuffle {
			_, err := game.Push(token)
			s.Require().NoError(err)
		}
	}

	result := game.Terminal()
	s.True(result.Ended)
	s.True(result.Draw)
	s.Equal(ReasonRepetition, result.Reason)
}

func (s *ChessSuite) TestFiftyMoveRule() {
	pos := s.mustParse("7k/7r/8/8/8/8/R7/K7 w - - 100 80")
	game := &Game{pos: pos, keyCounts: map[string]int{pos.RepetitionKey(): 1}}

	result := game.Terminal()
	s.True(result.Ended)
	s.True(result.Draw)
	s.Equal(ReasonFiftyMove, result.Reason)
}

func (s *ChessSuite) TestCheckmateTakesPrecedenceOverFiftyMove() {
	// Back-rank mate with an exhausted halfmove clock still reads as mate
	pos := s.mustParse("R5k1/5ppp/8/8/8/8/8/6K1 b - - 100 90")
	game := &Game{pos: pos, keyCounts: map[string]int{pos.RepetitionKey(): 1}}

	result := game.Terminal()
	s.True(result.Ended)
	s.False(result.Draw)
	s.Equal(White, result.Winner)
	s.Equal(ReasonCheckmate, result.Reason)
}

// Replay tests

func (s *ChessSuite) TestGameFromHistoryReproducesPosition() {
	history := []string{"e4", "e5", "Nf3"}
	game, err := GameFromHistory(history)
	s.Require().NoError(err)

	s.Equal("rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", game.Position().FEN())
	s.Equal(history, game.Moves())
}

func (s *ChessSuite) TestGameFromHistoryRejectsBadHistory() {
	_, err := GameFromHistory([]string{"e4", "e4"})
	s.Error(err)
}
