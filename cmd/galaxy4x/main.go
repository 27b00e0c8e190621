package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/galaxy4x/engine/internal/access"
	"github.com/galaxy4x/engine/internal/change"
	"github.com/galaxy4x/engine/internal/config"
	"github.com/galaxy4x/engine/internal/core/event"
	"github.com/galaxy4x/engine/internal/core/pacing"
	"github.com/galaxy4x/engine/internal/data"
	"github.com/galaxy4x/engine/internal/scripting"
	"github.com/galaxy4x/engine/internal/updater"
	"github.com/galaxy4x/engine/internal/world"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name, session string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             galaxy4x  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        headless simulation host           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mgame:\033[0m %s \033[90m(session %s)\033[0m\n\n", name, session)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main host logic ───────────────────────────────────────────────

func run() error {
	// 1. Load .env and config
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfgPath := "config/galaxy4x.toml"
	if p := os.Getenv("GALAXY4X_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	session := uuid.NewString()
	log = log.With(zap.String("session", session))
	printBanner(cfg.Game.Name, session)

	// 3. Load content definitions
	printSection("Content")

	systems, err := data.LoadGalaxy(cfg.Game.Galaxy)
	if err != nil {
		return fmt.Errorf("galaxy: %w", err)
	}
	blueprints, err := data.LoadBlueprintTable(cfg.Game.Blueprints)
	if err != nil {
		return fmt.Errorf("blueprints: %w", err)
	}
	scripts, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	defer scripts.Close()

	w := world.NewWorld(systems)
	printStat("systems", len(w.Galaxy))
	printStat("bodies", w.Galaxy.BodyCount())
	printStat("ship designs", blueprints.Count())
	printStat("scripted blueprints", len(scripts.Names()))
	fmt.Println()

	// 4. Wire the simulation
	printSection("Simulation")

	granularity, err := updater.ParseGranularity(cfg.Clock.Granularity)
	if err != nil {
		return fmt.Errorf("granularity: %w", err)
	}
	bus := event.NewBus()
	subscribeEvents(bus, log)

	model := access.New(w, change.NewInterpreter(bus, log), log)
	upd := updater.New(model, granularity, log)
	upd.Control().SetPace(cfg.Clock.Pace())
	upd.Start()
	if cfg.Clock.StartPaused {
		upd.Control().SetStatus(pacing.Paused)
	}
	printOK(fmt.Sprintf("updater %s, pace %dms, one tick = %v",
		upd.Control().Status(), upd.Control().Pace(), granularity(1)))

	for _, order := range cfg.Game.StartupBuilds {
		item, err := resolveBlueprint(order.Blueprint, world.Human, blueprints, scripts)
		if err != nil {
			upd.Stop()
			return err
		}
		at := world.BodyAddress{System: order.System, Body: order.Body}
		if err := upd.Enqueue(change.EnqueueConstruction{Item: item, At: at}); err != nil {
			upd.Stop()
			return fmt.Errorf("queue %s at %v: %w", order.Blueprint, at, err)
		}
		printOK(fmt.Sprintf("queued %s at %v", order.Blueprint, at))
	}
	fmt.Println()

	// 5. Status loop until signal
	pulse := pacing.NewPulser(cfg.Status.PulseMS)
	pulse.Start()
	defer pulse.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printReady("running, Ctrl+C to stop")
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return statusLoop(ctx, upd, model, pulse, log)
	})
	eg.Go(func() error {
		return watchWriter(ctx, upd, model)
	})
	err = eg.Wait()

	// 6. Shutdown
	upd.Stop()
	deadline := time.Now().Add(2 * time.Second)
	for model.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	log.Info("stopped", zap.Duration("game_time", upd.Snapshot().Time.Std()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchWriter fails once the writer is poisoned or the ticks stop on their own.
func watchWriter(ctx context.Context, upd *updater.Updater, model *access.Access) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := model.Err(); err != nil {
			return err
		}
		if upd.Control().Status() == pacing.Aborted {
			return errors.New("updater aborted")
		}
	}
}

// statusLoop logs a summary of the world whenever the pulser asks for one.
func statusLoop(ctx context.Context, upd *updater.Updater, model *access.Access, pulse *pacing.Pulser, log *zap.Logger) error {
	p := message.NewPrinter(language.English)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if !pulse.Take() {
			continue
		}

		var heads, ships, money int64
		var at world.Duration
		model.View(func(w *world.World) {
			at = w.Time
			if player, ok := w.Player(world.Human); ok {
				money = player.Money
			}
			w.Galaxy.EachColony(func(_ world.BodyAddress, c *world.Colony) {
				if c.Owner == world.Human && c.Population != nil {
					heads += c.Population.HeadCount
				}
			})
			for i := range w.Ships {
				if w.Ships[i].Owner == world.Human {
					ships++
				}
			}
		})
		log.Info("status",
			zap.String("day", p.Sprintf("%.1f", at.Fraction(world.Day))),
			zap.String("money", p.Sprintf("%d", money)),
			zap.String("population", p.Sprintf("%d", heads)),
			zap.Int64("ships", ships),
			zap.Stringer("clock", upd.Control().Status()),
			zap.Int("pending", model.Pending()),
		)
	}
}

func resolveBlueprint(name string, owner world.PlayerID, table *data.BlueprintTable, scripts *scripting.Engine) (world.Constructable, error) {
	if b, ok := scripts.Blueprint(name, owner); ok {
		return b, nil
	}
	if e := table.Get(name); e != nil {
		return e.Ship(owner), nil
	}
	return nil, fmt.Errorf("unknown blueprint %q", name)
}

func subscribeEvents(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.ConstructionCompleted) {
		log.Info("construction completed",
			zap.Stringer("at", e.At),
			zap.Int64("price", e.Price),
			zap.Duration("game_time", e.Time.Std()),
		)
	})
	event.Subscribe(bus, func(e event.ColonyDepopulated) {
		log.Warn("colony depopulated", zap.Stringer("at", e.At), zap.Int("owner", int(e.Owner)))
	})
	event.Subscribe(bus, func(e event.TreasurySaturated) {
		log.Warn("treasury at limit", zap.Int("player", int(e.Player)), zap.Int64("money", e.Money))
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
