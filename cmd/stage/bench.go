package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stage/internal/bench"
	"github.com/vovakirdan/tui-stage/internal/registry"
	"github.com/vovakirdan/tui-stage/internal/storage"
)

var (
	flagBenchDuration time.Duration
	flagBenchSize     string
	flagBenchSave     bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <scene>",
	Short: "Benchmark a scene",
	Long: `Run a scene on the frame clock against a headless display and report
frames painted, skipped ticks, drift and the measured frame rate.

The viewport defaults to the terminal size (two pixels per row) when
stdout is a terminal, and 160x90 otherwise.

Examples:
  stage bench bounce
  stage bench loading --duration 10s --size 320x180
  stage bench cursor --preset uncapped --save`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&flagBenchDuration, "duration", 3*time.Second, "How long to run the scene")
	benchCmd.Flags().StringVar(&flagBenchSize, "size", "", "Viewport in pixels, WIDTHxHEIGHT")
	benchCmd.Flags().BoolVar(&flagBenchSave, "save", false, "Store the run in the runs database")
}

// parseSize parses WIDTHxHEIGHT.
func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT", s)
	}
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("invalid size %q, negative extent", s)
	}
	return w, h, nil
}

// benchSize picks the viewport for a run.
func benchSize() (int, int, error) {
	if flagBenchSize != "" {
		return parseSize(flagBenchSize)
	}
	if isTerminal() {
		cols, rows := terminalSize()
		return cols, rows * 2, nil
	}
	return 160, 90, nil
}

func runBench(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'stage list' to see available scenes.")
		os.Exit(1)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fatalf("%v", err)
	}
	width, height, err := benchSize()
	if err != nil {
		fatalf("%v", err)
	}

	logger, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	fmt.Printf("Benchmarking %s at %s for %v (%dx%d)...\n", sceneID, rateLabel(cfg.Clock.FPS), flagBenchDuration, width, height)

	run, err := bench.Run(cmd.Context(), bench.Options{
		SceneID:  sceneID,
		Duration: flagBenchDuration,
		Width:    width,
		Height:   height,
		Config:   cfg,
		Logger:   logger,
	})
	if errors.Is(err, context.Canceled) {
		fmt.Println("Interrupted.")
		return
	}
	if err != nil {
		fatalf("%v", err)
	}

	printRun(run)

	if !flagBenchSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening runs database: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun(run)
	if err != nil {
		fatalf("saving run: %v", err)
	}
	fmt.Printf("\nSaved as run #%d.\n", id)
}

func rateLabel(fps float64) string {
	if fps < 0 {
		return "uncapped fps"
	}
	return fmt.Sprintf("%.0f fps", fps)
}

func printRun(r storage.Run) {
	fmt.Println()
	fmt.Printf("  %-12s %v\n", "Wall", r.Wall.Round(time.Millisecond))
	fmt.Printf("  %-12s %v\n", "Covered", r.Covered.Round(time.Millisecond))
	fmt.Printf("  %-12s %v\n", "Drift", r.Drift().Round(10*time.Microsecond))
	fmt.Printf("  %-12s %d\n", "Batches", r.Batches)
	fmt.Printf("  %-12s %d\n", "Frames", r.Frames)
	fmt.Printf("  %-12s %d\n", "Skipped", r.Skipped)
	fmt.Printf("  %-12s %d\n", "Faults", r.Faults)
	fmt.Printf("  %-12s %.2f\n", "FPS", r.MeasuredFPS)
}
