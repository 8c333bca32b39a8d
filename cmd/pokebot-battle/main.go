package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/ability"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/api"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/config"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/constants"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/damage"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/logging"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/ruleset"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/service"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/status"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvServiceSecret})
	// Load the battle configuration file. Path may be provided via
	// BATTLE_CONFIG_PATH or defaults to ./battle_config.json in the
	// current working directory. A missing file runs on defaults; only
	// a present-but-broken file is fatal.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./battle_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Invalid battle configuration", err, logging.Fields{"config_path": configPath, "hint": "optional keys: server.address, database.path, content_dir, battle_idle_timeout_minutes, ranked_by_default"})
	}

	// Species, moves, items and the type chart. An empty content_dir
	// serves the embedded defaults.
	db, err := content.Load(cfg.ContentDir)
	if err != nil {
		logging.Fatal("Failed to load battle content", err, logging.Fields{"content_dir": cfg.ContentDir})
	}

	starters, err := service.StarterTrainers(db)
	if err != nil {
		logging.Fatal("Content is missing starter species", err, nil)
	}
	gdb, err := storage.OpenAndMigrate(cfg.DatabasePath, starters)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": cfg.DatabasePath})
	}
	repo := storage.NewSQLiteRepository(gdb)

	rng := engine.DefaultRNG()
	mgr := engine.New(engine.Collaborators{
		Damage:  damage.NewCalculator(db, rng),
		Status:  status.NewManager(rng),
		Ability: ability.NewHandler(),
		Ruleset: ruleset.NewHandler(),
		Content: db,
	}, rng)
	book := service.NewChallengeBook()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startIdleSweeper(ctx, repo, mgr, book, cfg.BattleIdleTimeout)

	handler := api.NewBattleHandler(repo, mgr, db, book, cfg.RankedByDefault)
	authHandler := api.NewAuthHandler(repo, db)

	router := gin.Default()
	api.RegisterRoutes(router, handler, authHandler)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
