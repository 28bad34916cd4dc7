package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starcatch/internal/core"
	"github.com/vovakirdan/starcatch/internal/games/stars"
	"github.com/vovakirdan/starcatch/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start an interactive session.

The world window is the terminal size times the configured cell size, unless
the config sets an explicit window. It is fixed for the session; resizing
the terminal only rescales the view.

Controls:
  Arrows/WASD  - Move
  P/Esc        - Pause
  M            - Mute
  R            - New session (after the player is removed)
  Ctrl+S       - Screenshot (text and PNG in ~/.starcatch/screenshots)
  ?            - Help
  Q/Ctrl+C     - Quit

Examples:
  starcatch play
  starcatch play --seed 7 --mute
  starcatch play --config ./my-stars.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start without audio")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := stars.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	logger, logCloser, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	stars.SetConfigPath(flagConfig)
	game, cfg, err := createGame(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The bottom row is the help line
	windowW, windowH := cfg.Window.Resolve(width, height-1)
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		WindowW:  windowW,
		WindowH:  windowH,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	host, res := newHost(game, cfg, !flagMute, logger)
	runErr := tui.Run(host, rc, tui.Options{
		Hold:   time.Duration(cfg.Input.HoldMillis) * time.Millisecond,
		Logger: logger,
	})
	res.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
