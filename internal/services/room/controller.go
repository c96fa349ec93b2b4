package room

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/chessroom-go/internal/dependencies/clock"
	"github.com/mcoot/chessroom-go/internal/model"
	"github.com/mcoot/chessroom-go/internal/services/normalizer"
	"github.com/mcoot/chessroom-go/internal/services/rules"
	"github.com/mcoot/chessroom-go/internal/storage"
)

// JoinResult reports where a join attempt landed: a seat, or spectator
// access when both seats are held by other participants.
type JoinResult struct {
	Seat      model.Seat
	Spectator bool
}

// Controller is the session coordinator. It owns room lifecycle: create,
// join and seat assignment, turn gating, the move submission pipeline,
// and resignation.
//
// Every mutating operation runs as one critical section: load the full
// mapping, compute the new record from that snapshot, save the full
// mapping back. The store only guarantees atomic whole-mapping saves, so
// the controller serializes its own mutators with a process-wide mutex;
// without it two mutations computed off the same stale snapshot would
// silently lose one update. Reads (GetRoomView) skip the mutex and may
// be one operation stale.
type Controller struct {
	store      storage.Store
	rules      *rules.Adapter
	normalizer *normalizer.Service
	clock      clock.Clock
	logger     *slog.Logger

	mu sync.Mutex
}

// NewController creates a new room Controller
func NewController(
	store storage.Store,
	rulesAdapter *rules.Adapter,
	norm *normalizer.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:      store,
		rules:      rulesAdapter,
		normalizer: norm,
		clock:      clk,
		logger:     logger.With(slog.String("component", "room-controller")),
	}
}

// CreateRoom creates a new room under the given code with empty seats
// and the initial position. The code is case-normalized; creation fails
// if it is already taken.
func (c *Controller) CreateRoom(ctx context.Context, rawCode string, vsEngine bool) (*model.RoomView, error) {
	code := model.NormalizeRoomCode(rawCode)

	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	if _, taken := rooms[code]; taken {
		return nil, model.ErrRoomExists
	}

	now := c.clock.Now()
	room := &model.Room{
		Code:      code,
		Position:  c.rules.InitialPosition(),
		Moves:     []string{},
		Turn:      model.SeatWhite,
		Status:    model.RoomStatusOngoing,
		Seats:     map[model.Seat]model.ParticipantID{},
		VsEngine:  vsEngine,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rooms[code] = room

	if err := c.store.SaveAll(ctx, rooms); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("code", string(code)),
		slog.Bool("vs_engine", vsEngine),
	)

	return room.View(), nil
}

// Join assigns the participant a seat in the room. Policy, in order: the
// preferred seat if given and empty-or-own, then white if empty-or-own,
// then black, otherwise the participant becomes a spectator. Re-joining
// an already-held seat is an idempotent no-op; a seat held by another
// participant is never reassigned.
func (c *Controller) Join(ctx context.Context, rawCode string, participant model.ParticipantID, preference *model.Seat) (*JoinResult, error) {
	code := model.NormalizeRoomCode(rawCode)

	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	room, ok := rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}

	if seat, held := room.SeatOf(participant); held && (preference == nil || *preference == seat) {
		return &JoinResult{Seat: seat}, nil
	}

	var target model.Seat
	switch {
	case preference != nil && room.SeatAvailableTo(*preference, participant):
		target = *preference
	case room.SeatAvailableTo(model.SeatWhite, participant):
		target = model.SeatWhite
	case room.SeatAvailableTo(model.SeatBlack, participant):
		target = model.SeatBlack
	default:
		return &JoinResult{Spectator: true}, nil
	}

	if room.Seats[target] == participant {
		// Already held; nothing to persist.
		return &JoinResult{Seat: target}, nil
	}

	room.Seats[target] = participant
	room.UpdatedAt = c.clock.Now()

	if err := c.store.SaveAll(ctx, rooms); err != nil {
		return nil, err
	}

	c.logger.Info("seat assigned",
		slog.String("code", string(code)),
		slog.String("seat", string(target)),
	)

	return &JoinResult{Seat: target}, nil
}

// SubmitMove runs the move-intake pipeline: cheap turn-ownership checks
// first, then normalization of the raw input, then parse/apply/terminal
// check through the rules adapter, then a single persisted update. It
// returns the canonical token actually recorded, which may differ from
// the raw input.
func (c *Controller) SubmitMove(ctx context.Context, rawCode string, participant model.ParticipantID, rawInput string) (string, *model.RoomView, error) {
	code := model.NormalizeRoomCode(rawCode)

	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.store.LoadAll(ctx)
	if err != nil {
		return "", nil, err
	}

	room, ok := rooms[code]
	if !ok {
		return "", nil, model.ErrRoomNotFound
	}

	if room.Ended() {
		return "", nil, model.ErrGameEnded
	}

	// Rejected before any normalizer or rules-engine work
	seat, held := room.SeatOf(participant)
	if !held || seat != room.Turn {
		return "", nil, model.ErrNotYourTurn
	}

	token := c.normalizer.Normalize(ctx, rawInput, room.Position)

	transition, err := c.rules.ApplyToken(room.Moves, token)
	if err != nil {
		return "", nil, err
	}

	room.Moves = append(room.Moves, transition.Canonical)
	room.Position = transition.Position
	room.Turn = transition.Turn
	if transition.Ended {
		room.Status = model.RoomStatusEnded
		room.Outcome = transition.Outcome
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.store.SaveAll(ctx, rooms); err != nil {
		return "", nil, err
	}

	c.logger.Info("move applied",
		slog.String("code", string(code)),
		slog.String("move", transition.Canonical),
		slog.Int("ply", len(room.Moves)),
		slog.Bool("ended", transition.Ended),
	)

	return transition.Canonical, room.View(), nil
}

// Resign ends the game in favor of the opposing seat.
func (c *Controller) Resign(ctx context.Context, rawCode string, participant model.ParticipantID) (*model.RoomView, error) {
	code := model.NormalizeRoomCode(rawCode)

	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	room, ok := rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}

	if room.Ended() {
		return nil, model.ErrGameEnded
	}

	seat, held := room.SeatOf(participant)
	if !held {
		return nil, model.ErrNotAParticipant
	}

	room.Status = model.RoomStatusEnded
	room.Outcome = model.WinnerOutcome(seat.Other())
	room.UpdatedAt = c.clock.Now()

	if err := c.store.SaveAll(ctx, rooms); err != nil {
		return nil, err
	}

	c.logger.Info("participant resigned",
		slog.String("code", string(code)),
		slog.String("seat", string(seat)),
	)

	return room.View(), nil
}

// GetRoomView returns a read-only projection of the room. It reads a
// complete store snapshot without taking the mutator lock, so the view
// may trail an in-flight mutation by one operation.
func (c *Controller) GetRoomView(ctx context.Context, rawCode string) (*model.RoomView, error) {
	code := model.NormalizeRoomCode(rawCode)

	rooms, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	room, ok := rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.View(), nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, rawCode string, vsEngine bool) (*model.RoomView, error)
	Join(ctx context.Context, rawCode string, participant model.ParticipantID, preference *model.Seat) (*JoinResult, error)
	SubmitMove(ctx context.Context, rawCode string, participant model.ParticipantID, rawInput string) (string, *model.RoomView, error)
	Resign(ctx context.Context, rawCode string, participant model.ParticipantID) (*model.RoomView, error)
	GetRoomView(ctx context.Context, rawCode string) (*model.RoomView, error)
}

var _ ControllerInterface = (*Controller)(nil)
