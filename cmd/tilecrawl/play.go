package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"chosenoffset.com/tilecrawl/data"
	"chosenoffset.com/tilecrawl/internal/config"
	"chosenoffset.com/tilecrawl/internal/game"
	"chosenoffset.com/tilecrawl/internal/input"
	redisclient "chosenoffset.com/tilecrawl/internal/redis"
	"chosenoffset.com/tilecrawl/internal/render"
	ebitenrender "chosenoffset.com/tilecrawl/internal/render/ebiten"
	"chosenoffset.com/tilecrawl/internal/render/terminal"
	"chosenoffset.com/tilecrawl/internal/save"
	"chosenoffset.com/tilecrawl/internal/telemetry"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

type playFlags struct {
	configPath string
	levelsDir  string
	level      string
	terminal   bool
	store      string
	saveDir    string
	redisAddr  string
	slot       string
	newGame    bool
	logFile    string
}

var play playFlags

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(play.configPath)
		if err != nil {
			return err
		}
		applyPlayFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runPlay(cmd.Context(), cfg)
	},
}

func init() {
	f := playCmd.Flags()
	f.StringVar(&play.configPath, "config", "tilecrawl.json", "config file (missing file uses defaults)")
	f.StringVar(&play.levelsDir, "levels", "", "directory of level files (default: built-in levels)")
	f.StringVar(&play.level, "level", "", "level to start on when no save exists")
	f.BoolVar(&play.terminal, "terminal", false, "render in the terminal instead of a window")
	f.StringVar(&play.store, "store", "", "save store: file or redis")
	f.StringVar(&play.saveDir, "save-dir", "", "directory for file saves")
	f.StringVar(&play.redisAddr, "redis-addr", "", "redis address for the redis store")
	f.StringVar(&play.slot, "slot", "", "save slot name")
	f.BoolVar(&play.newGame, "new", false, "ignore the existing save and start over")
	f.StringVar(&play.logFile, "log-file", "tilecrawl.log", "log file used in terminal mode")
}

func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.StartLevel = play.level
	}
	if flags.Changed("store") {
		cfg.Save.Store = play.store
	}
	if flags.Changed("save-dir") {
		cfg.Save.Dir = play.saveDir
	}
	if flags.Changed("redis-addr") {
		cfg.Save.RedisAddr = play.redisAddr
	}
	if flags.Changed("slot") {
		cfg.Save.Slot = play.slot
	}
}

func runPlay(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Component("main")

	if play.terminal {
		f, err := os.OpenFile(play.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	tracer := telemetry.NoopTracer()
	if cfg.Telemetry.Enabled {
		backend := "ebiten"
		if play.terminal {
			backend = "terminal"
		}
		shutdown, err := telemetry.Setup(ctx, telemetry.Session{
			Version: version,
			Backend: backend,
			Store:   cfg.Save.Store,
			Slot:    cfg.Save.Slot,
		})
		if err != nil {
			log.WithError(err).Warn("telemetry setup failed, continuing without tracing")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.WithError(err).Warn("telemetry shutdown failed")
				}
			}()
			tracer = telemetry.Tracer("game")
		}
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	checkpointer := save.NewCheckpointer(store, cfg.Save.Slot, tracer)

	var rec *save.Record
	if play.newGame {
		if err := store.Delete(ctx, cfg.Save.Slot); err != nil {
			log.WithError(err).Warn("could not clear old save")
		}
		rec = save.NewRecord(cfg.StartLevel)
	} else {
		rec, err = checkpointer.Restore(ctx, cfg.StartLevel)
		if err != nil {
			log.WithError(err).Warn("could not restore save, starting fresh")
		}
	}

	kb := input.NewKeyboard()
	g, err := game.New(ctx, game.Options{
		Config:       cfg,
		Levels:       levelSource(),
		Input:        kb,
		Record:       rec,
		Checkpointer: checkpointer,
		Tracer:       tracer,
	})
	if err != nil {
		return err
	}

	engine, err := newEngine(kb, cfg)
	if err != nil {
		return err
	}
	engine.SetWindowSize(cfg.Viewport.Width, cfg.Viewport.Height)
	engine.SetWindowTitle("tilecrawl - " + g.Level.Name)

	log.WithField("level_id", g.Map.ID()).Info("starting game")
	return engine.RunGame(g)
}

func levelSource() fs.FS {
	if play.levelsDir != "" {
		return os.DirFS(play.levelsDir)
	}
	return data.Levels()
}

func newEngine(kb *input.Keyboard, cfg *config.Config) (render.Engine, error) {
	if !play.terminal {
		return ebitenrender.NewEngine(kb), nil
	}
	engine, err := terminal.NewEngine(kb, cfg.TileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	engine.SetTPS(cfg.TPS)
	return engine, nil
}

// openStore builds the configured save store. An unreachable redis is
// logged, not fatal: checkpoints will fail and be skipped.
func openStore(ctx context.Context, cfg *config.Config) (save.Store, error) {
	switch cfg.Save.Store {
	case config.StoreRedis:
		client, err := redisclient.NewClient(cfg.Save.RedisAddr, &redisclient.Options{
			DialTimeout: 2 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Component("main").WithError(err).
				WithField("addr", cfg.Save.RedisAddr).
				Warn("redis unreachable, saves will be skipped until it returns")
		}
		return save.NewRedisStore(client)
	default:
		return save.NewFileStore(cfg.Save.Dir), nil
	}
}
