package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stage/internal/platform/tui"
	"github.com/vovakirdan/tui-stage/internal/registry"
	"github.com/vovakirdan/tui-stage/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Play a scene",
	Long: `Play the specified scene in the terminal. Without a scene, a menu
lets you pick scenes and browse stored runs until you quit.

Controls:
  P          - Pause/resume the clock
  ?          - Toggle help
  Esc        - Back to the menu (menu mode only)
  Q/Ctrl+C   - Quit

Scene controls:
  bounce     - +/- add or remove balls, space/b to toggle boxes
  cursor     - arrows/hjkl/wasd or the mouse to move, b to toggle boxes
  loading    - none

Examples:
  stage play
  stage play bounce
  stage play loading --preset cinema
  stage play cursor --config ./my-stage.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'stage list' to see available scenes.")
		os.Exit(1)
	}
	if !isTerminal() {
		fatalf("play needs an interactive terminal")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fatalf("%v", err)
	}

	// The terminal UI owns the screen, so logs only go to --log.
	logger, closer, err := newLogger(cfg, nil)
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	ctx := cmd.Context()

	if len(args) == 0 {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", openErr)
			// Continue without storage - the run browser stays empty
			store = nil
		}
		runErr := tui.RunSession(ctx, cfg, store, logger)
		if store != nil {
			store.Close()
		}
		if runErr != nil {
			fatalf("running session: %v", runErr)
		}
		return
	}

	demo, err := registry.Create(args[0], cfg)
	if err != nil {
		fatalf("creating scene: %v", err)
	}
	if err := tui.Play(ctx, cfg, demo, logger); err != nil {
		fatalf("playing scene: %v", err)
	}
}
