package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/squaregame/squares/internal/config"
	"github.com/squaregame/squares/internal/core/event"
	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/data"
	"github.com/squaregame/squares/internal/frontend/headless"
	"github.com/squaregame/squares/internal/frontend/terminal"
	"github.com/squaregame/squares/internal/game"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", title)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	s := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(s)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), s)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/squares.toml"
	if p := os.Getenv("SQUARES_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging, cfg.Display.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	headlessMode := cfg.Display.Mode == config.ModeHeadless
	if headlessMode {
		printBanner(cfg.Game.Title)
		printSection("Data")
	}

	// 3. Load data tables
	look, err := data.LoadAppearanceTable(cfg.Display.Appearance)
	if err != nil {
		return fmt.Errorf("load appearance: %w", err)
	}

	tag, err := language.Parse(cfg.Display.Language)
	if err != nil {
		log.Warn("unknown language, using english", zap.String("language", cfg.Display.Language), zap.Error(err))
		tag = language.English
	}
	printer := message.NewPrinter(tag)

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting",
		zap.String("mode", cfg.Display.Mode),
		zap.Int64("seed", seed),
		zap.Duration("tick", cfg.Loop.TickRate),
	)

	// 4. Create frontend
	var fe platform.Frontend
	if headlessMode {
		printStat("Entity looks", look.Count())
		engine, err := scripting.NewEngine(cfg.Headless.Script, log)
		if err != nil {
			return fmt.Errorf("autopilot: %w", err)
		}
		defer engine.Close()
		printOK("Autopilot " + cfg.Headless.Script)
		fe = headless.New(cfg.Headless, engine, log)
	} else {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("new screen: %w", err)
		}
		tf, err := terminal.New(screen, look, cfg.Display, cfg.Game.Title)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		fe = tf
	}
	defer fe.Close()

	// 5. Create game
	g := game.New(fe, game.Options{
		SquareSize: cfg.Game.SquareSize,
		EnemySpeed: cfg.Game.EnemySpeed,
		Step:       cfg.Loop.TickRate,
		Rand:       rand.New(rand.NewSource(seed)),
		Printer:    printer,
	}, log)

	sessions, best := 0, 0
	event.Subscribe(g.Bus(), func(ev event.SessionEnded) {
		sessions++
		best = max(best, ev.Score)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Run
	if headlessMode {
		printSection("Run")
		err = runFreely(ctx, g, fe)
	} else {
		err = runRealtime(ctx, g, fe, cfg.Loop)
	}
	if err != nil {
		log.Error("game loop stopped", zap.Error(err))
	}
	log.Info("stopped",
		zap.Uint64("ticks", g.Ticks()),
		zap.Int("sessions", sessions),
		zap.Int("best_score", best),
	)
	if headlessMode {
		printStat("Ticks", g.Ticks())
		printStat("Sessions", sessions)
		printStat("Best score", best)
	}
	return err
}

// runRealtime draws at the frame rate and advances the game by however many
// fixed ticks fit in the elapsed time.
func runRealtime(ctx context.Context, g *game.Game, fe platform.Frontend, cfg config.LoopConfig) error {
	clock := coresys.NewFixedStep(cfg.TickRate, cfg.MaxCatchUp, time.Now())
	ticker := time.NewTicker(cfg.FrameRate)
	defer ticker.Stop()

	fe.Draw(g.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if fe.Pump() {
				return nil
			}
			for n := clock.Advance(now); n > 0; n-- {
				if err := g.Tick(); err != nil {
					return fmt.Errorf("game loop: %w", err)
				}
			}
			fe.Draw(g.Snapshot())
		}
	}
}

// runFreely runs one tick per frame without waiting for the wall clock.
func runFreely(ctx context.Context, g *game.Game, fe platform.Frontend) error {
	fe.Draw(g.Snapshot())
	for ctx.Err() == nil {
		if fe.Pump() {
			return nil
		}
		if err := g.Tick(); err != nil {
			return fmt.Errorf("game loop: %w", err)
		}
		fe.Draw(g.Snapshot())
	}
	return nil
}

// newLogger builds the zap logger. The terminal frontend owns stdout and
// stderr, so in that mode logs always go to a file.
func newLogger(cfg config.LoggingConfig, mode string) (*zap.Logger, error) {
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

	output := cfg.Output
	if output == "" && mode == config.ModeTerminal {
		output = "squares.log"
	}
	if output != "" {
		// no escape codes in files
		if cfg.Format != "json" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		zapCfg.OutputPaths = []string{output}
		zapCfg.ErrorOutputPaths = []string{output}
	}
	return zapCfg.Build()
}
