package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/chessroom-go/internal/chess"
	"github.com/mcoot/chessroom-go/internal/model"
	"github.com/mcoot/chessroom-go/internal/testutil"
)

type AdapterSuite struct {
	suite.Suite

	adapter *Adapter
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.adapter = New(testutil.NopLogger())
}

func (s *AdapterSuite) TestInitialPosition() {
	s.Equal(chess.InitialFEN, s.adapter.InitialPosition())
}

func (s *AdapterSuite) TestSideToMove() {
	seat, err := s.adapter.SideToMove(chess.InitialFEN)
	s.Require().NoError(err)
	s.Equal(model.SeatWhite, seat)

	seat, err = s.adapter.SideToMove("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	s.Require().NoError(err)
	s.Equal(model.SeatBlack, seat)

	_, err = s.adapter.SideToMove("garbage")
	s.Error(err)
}

func (s *AdapterSuite) TestApplyTokenFirstMove() {
	transition, err := s.adapter.ApplyToken(nil, "e4")
	s.Require().NoError(err)

	s.Equal("e4", transition.Canonical)
	s.Equal("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", transition.Position)
	s.Equal(model.SeatBlack, transition.Turn)
	s.False(transition.Ended)
	s.Equal(model.Outcome(""), transition.Outcome)
}

func (s *AdapterSuite) TestApplyTokenNormalizesToCanonicalSAN() {
	transition, err := s.adapter.ApplyToken(nil, "e2e4")
	s.Require().NoError(err)
	s.Equal("e4", transition.Canonical)
}

func (s *AdapterSuite) TestApplyTokenUnreadableInput() {
	_, err := s.adapter.ApplyToken(nil, "definitely not chess")
	s.ErrorIs(err, model.ErrInvalidNotation)
}

func (s *AdapterSuite) TestApplyTokenIllegalMove() {
	_, err := s.adapter.ApplyToken(nil, "e5")
	s.ErrorIs(err, model.ErrInvalidMove)
}

func (s *AdapterSuite) TestApplyTokenCheckmate() {
	transition, err := s.adapter.ApplyToken([]string{"f3", "e5", "g4"}, "Qh4")
	s.Require().NoError(err)

	s.Equal("Qh4#", transition.Canonical)
	s.True(transition.Ended)
	s.Equal(model.OutcomeBlackWins, transition.Outcome)
	s.Equal(chess.ReasonCheckmate, transition.Reason)
}

func (s *AdapterSuite) TestApplyTokenStalemateDraw() {
	// The shortest known stalemate game
	transition, err := s.adapter.ApplyToken(
		[]string{"e3", "a5", "Qh5", "Ra6", "Qxa5", "h5", "Qxc7", "Rah6", "h4", "f6", "Qxd7", "Kf7", "Qxb7", "Qd3", "Qxb8", "Qh7", "Qxc8", "Kg6"},
		"Qe6",
	)
	s.Require().NoError(err)
	s.True(transition.Ended)
	s.Equal(model.OutcomeDraw, transition.Outcome)
	s.Equal(chess.ReasonStalemate, transition.Reason)
}

func (s *AdapterSuite) TestReplay() {
	fen, err := s.adapter.Replay([]string{"e4", "e5", "Nf3"})
	s.Require().NoError(err)
	s.Equal("rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", fen)

	fen, err = s.adapter.Replay(nil)
	s.Require().NoError(err)
	s.Equal(chess.InitialFEN, fen)
}

func (s *AdapterSuite) TestReplayRejectsCorruptHistory() {
	_, err := s.adapter.Replay([]string{"e4", "e4"})
	s.Error(err)
}

func (s *AdapterSuite) TestLegalMoves() {
	moves, err := s.adapter.LegalMoves(chess.InitialFEN)
	s.Require().NoError(err)
	s.Len(moves, 20)
	s.Contains(moves, "e2e4")
}
