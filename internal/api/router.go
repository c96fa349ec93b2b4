package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/chessroom-go/internal/api/handler"
	"github.com/mcoot/chessroom-go/internal/api/middleware"
	"github.com/mcoot/chessroom-go/internal/services/opponent"
	"github.com/mcoot/chessroom-go/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	RoomController  room.ControllerInterface
	OpponentService *opponent.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.OpponentService)
	healthHandler := handler.NewHealthHandler()

	participantMiddleware := middleware.Participant()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Unauthenticated routes
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/engine-move", roomHandler.EngineMove).Methods(http.MethodPost)

	// Routes requiring a participant identity
	authed := api.NewRoute().Subrouter()
	authed.Use(participantMiddleware)
	authed.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/moves", roomHandler.Move).Methods(http.MethodPost)
	authed.HandleFunc("/rooms/{code}/resign", roomHandler.Resign).Methods(http.MethodPost)

	return r
}
