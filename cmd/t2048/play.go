package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: 2048).

Controls:
  Arrows/WASD/hjkl  - Slide tiles (mouse drag works too)
  U                 - Undo the last move
  C                 - Keep playing after reaching 2048
  R                 - Restart
  P                 - Pause
  Ctrl+S            - Save a screenshot
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Half the chance of 4s, undo allowed
  normal - Rules as configured
  hard   - Double the chance of 4s, no undo

Examples:
  t2048 play
  t2048 play 2048_5x5
  t2048 play --difficulty hard
  t2048 play --seed 42
  t2048 play --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "2048"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w\nRun 't2048 list' to see available boards", err)
	}

	logger, logCloser, err := openFileLogger()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	opts := tui.ModelOptions{Logger: logger, Bell: os.Stdout}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		opts.Store = store
	}

	logger.Info("starting game", "game", gameID, "difficulty", flagDifficulty, "seed", flagSeed)
	if _, err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
