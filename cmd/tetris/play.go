package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagLines   int
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game. Without --lines you are asked how many lines to clear.

Controls (configurable under keys: in the config file):
  Left/Right   - Move
  Z / X        - Rotate counter-clockwise / clockwise
  Down         - Soft drop
  Up           - Hard drop
  Space        - Hold
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Examples:
  tetris play
  tetris play --lines 40
  tetris play --lines 10 --seed 42
  tetris play --log-file ~/.tetris/tetris.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLines, "lines", 0, "Lines to clear (0 = ask)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write game events to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playGame(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playGame runs one local session. Deferred cleanup runs before runPlay exits.
func playGame() error {
	if flagLines < 0 {
		return fmt.Errorf("--lines must be positive, got %d", flagLines)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}

	// The game owns the terminal, so events only go to a file.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, fileErr := openLogFile(flagLogFile)
		if fileErr != nil {
			return fileErr
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, flagLogLevel, "tetris")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Lines:  flagLines,
		Logger: logger,
	}

	if runErr := tui.Run(opts); runErr != nil {
		logger.Error("game failed", "error", runErr)
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
