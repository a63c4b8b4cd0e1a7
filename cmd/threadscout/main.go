package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/threadscout/internal/config"
	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/feed"
	"github.com/csheth/threadscout/internal/synth"
	"github.com/csheth/threadscout/internal/tui"
)

func main() {
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	logFile := flag.String("log-file", "", "write debug logs to this file")
	seed := flag.Int64("seed", 0, "pin the simulation seed (overrides THREADSCOUT_SEED)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if err := setupLogging(*logFile); err != nil {
		fmt.Println("failed to open log file:", err)
		os.Exit(1)
	}

	seedValue := cfg.Seed
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedValue))

	store := conversation.NewStore()
	gen := synth.NewGenerator(nil, rand.New(rand.NewSource(rng.Int63())))
	feedController := feed.NewController(store, gen, feed.Config{
		PageSize:         cfg.PageSize,
		InitialBatch:     cfg.InitialBatch,
		MaxConversations: cfg.MaxConversations,
		MinLoadDelay:     cfg.MinLoadDelay,
		MaxLoadDelay:     cfg.MaxLoadDelay,
		TickInterval:     cfg.TickInterval,
	}, rand.New(rand.NewSource(rng.Int63())))

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			App:   cfg,
			Store: store,
			Feed:  feedController,
			Gen:   gen,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

// setupLogging routes slog away from the terminal; stderr writes would tear
// the alternate screen.
func setupLogging(path string) error {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}
