package factory

import (
	"io"
	"log/slog"

	"github.com/mcoot/chessroom-go/internal/config"
	"github.com/mcoot/chessroom-go/internal/dependencies/clock"
	"github.com/mcoot/chessroom-go/internal/dependencies/random"
	"github.com/mcoot/chessroom-go/internal/services/normalizer"
	"github.com/mcoot/chessroom-go/internal/services/opponent"
	"github.com/mcoot/chessroom-go/internal/services/room"
	"github.com/mcoot/chessroom-go/internal/services/rules"
	"github.com/mcoot/chessroom-go/internal/storage"
	filestorage "github.com/mcoot/chessroom-go/internal/storage/file"
	"github.com/mcoot/chessroom-go/internal/storage/memory"
	redisstorage "github.com/mcoot/chessroom-go/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	Store storage.Store

	Clock  clock.Clock
	Random random.Random

	RulesAdapter      *rules.Adapter
	NormalizerService *normalizer.Service
	RoomController    *room.Controller
	OpponentService   *opponent.Service
}

// New creates a new application with all dependencies wired from config
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
	switch cfg.StorageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeFile:
		store = filestorage.New(cfg.RoomsFile)
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = redisStore
	}

	clk := clock.New()
	rnd := random.New()

	rulesAdapter := rules.New(logger)

	var translator normalizer.Translator
	if cfg.TranslatorURL != "" {
		translator = normalizer.NewHTTPTranslator(cfg.TranslatorURL)
	}
	normalizerService := normalizer.New(translator, cfg.TranslatorTimeout, logger)

	roomController := room.NewController(store, rulesAdapter, normalizerService, clk, logger)

	var mover opponent.Mover
	if cfg.EnginePath != "" {
		mover = opponent.NewUCIMover(cfg.EnginePath, cfg.EngineSkill)
	} else {
		mover = opponent.NewRandomMover(rulesAdapter, rnd)
	}
	opponentService := opponent.NewService(roomController, mover, cfg.EngineThinkTime, logger)

	return &App{
		Store:             store,
		Clock:             clk,
		Random:            rnd,
		RulesAdapter:      rulesAdapter,
		NormalizerService: normalizerService,
		RoomController:    roomController,
		OpponentService:   opponentService,
	}, nil
}
