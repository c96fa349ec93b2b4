package opponent

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/chessroom-go/internal/model"
	"github.com/mcoot/chessroom-go/internal/services/room"
)

// EngineParticipantID is the opaque participant identity the engine
// opponent plays under.
const EngineParticipantID = model.ParticipantID("engine-opponent")

// DefaultThinkTime is the per-move time budget when none is configured
const DefaultThinkTime = 100 * time.Millisecond

// Mover produces a move token for a position within a time budget. An
// empty token with a nil error means "no move" (the position is already
// terminal).
type Mover interface {
	BestMove(ctx context.Context, fen string, budget time.Duration) (string, error)
}

// Service drives the autonomous opponent in single-player rooms. It
// occupies a seat like any other participant and plays its replies
// through the normal move submission pipeline, so turn gating and
// terminal detection apply to it unchanged.
type Service struct {
	rooms     room.ControllerInterface
	mover     Mover
	thinkTime time.Duration
	logger    *slog.Logger
}

// NewService creates a new opponent Service
func NewService(rooms room.ControllerInterface, mover Mover, thinkTime time.Duration, logger *slog.Logger) *Service {
	if thinkTime <= 0 {
		thinkTime = DefaultThinkTime
	}
	return &Service{
		rooms:     rooms,
		mover:     mover,
		thinkTime: thinkTime,
		logger:    logger.With(slog.String("component", "opponent-service")),
	}
}

// AttachToRoom seats the engine participant in the room, preferring the
// black seat so the human creator takes white.
func (s *Service) AttachToRoom(ctx context.Context, code string) (model.Seat, error) {
	preference := model.SeatBlack
	result, err := s.rooms.Join(ctx, code, EngineParticipantID, &preference)
	if err != nil {
		return "", err
	}
	if result.Spectator {
		return "", model.ErrNotAParticipant
	}
	return result.Seat, nil
}

// PlayReply asks the mover for a move in the room's current position and
// submits it. It fails with ErrNotYourTurn unless the engine seat owns
// the turn, and returns an empty token when the game is already over by
// the time the engine is asked.
func (s *Service) PlayReply(ctx context.Context, code string) (string, error) {
	view, err := s.rooms.GetRoomView(ctx, code)
	if err != nil {
		return "", err
	}

	if view.Status == model.RoomStatusEnded {
		return "", nil
	}

	token, err := s.mover.BestMove(ctx, view.Position, s.thinkTime)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", nil
	}

	canonical, _, err := s.rooms.SubmitMove(ctx, code, EngineParticipantID, token)
	if err != nil {
		return "", err
	}

	s.logger.Info("engine replied",
		slog.String("code", code),
		slog.String("move", canonical),
	)

	return canonical, nil
}
