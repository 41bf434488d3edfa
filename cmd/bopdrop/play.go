package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/games/bopdrop"
	"github.com/vovakirdan/bopdrop/internal/platform/tui"
	"github.com/vovakirdan/bopdrop/internal/registry"
	"github.com/vovakirdan/bopdrop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Bop Drop",
	Long: `Start playing in this terminal.

Controls:
  Left/Right, A/D  - Aim
  Mouse            - Aim, click to drop
  Space            - Drop
  Enter            - Start
  P                - Pause
  R                - Restart
  Esc/B            - Scores (when paused or over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - One fewer droppable rank, lose line closer to the top
  normal - Values from the config file
  hard   - One more droppable rank, lower lose line, stricter settling

Examples:
  bopdrop play
  bopdrop play --difficulty easy
  bopdrop play --config ./my-bopdrop.yaml --seed 7`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}
	bopdrop.SetLogger(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(bopdrop.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without scores", "err", err)
		store = nil
	}

	logger.Info("session started", "width", width, "height", height, "fps", flagFPS, "seed", flagSeed)
	runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
