package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stage/internal/platform/tui"
	"github.com/vovakirdan/tui-stage/internal/storage"
)

var (
	flagRunsInteractive bool
	flagRunsLimit       int
	flagRunsClear       bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show stored benchmark runs",
	Long: `Display recent benchmark runs, newest first. Without a scene, runs of
every scene are listed.

Examples:
  stage runs
  stage runs bounce --limit 5
  stage runs --interactive
  stage runs loading --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse runs in a table")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the stored runs instead of listing them")
}

func runRuns(cmd *cobra.Command, args []string) {
	sceneID := ""
	if len(args) == 1 {
		sceneID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening runs database: %v", err)
	}
	defer store.Close()

	if flagRunsClear {
		clearRuns(store, sceneID)
		return
	}

	if flagRunsInteractive {
		if !isTerminal() {
			fatalf("--interactive needs an interactive terminal")
		}
		width, height := terminalSize()
		if err := tui.BrowseRuns(store, width, height); err != nil {
			fatalf("browsing runs: %v", err)
		}
		return
	}

	runs, err := store.RecentRuns(sceneID, flagRunsLimit)
	if err != nil {
		fatalf("retrieving runs: %v", err)
	}

	if sceneID != "" {
		fmt.Printf("Benchmark runs - %s\n", sceneID)
	} else {
		fmt.Println("Benchmark runs")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'stage bench <scene> --save' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-10s  %-8s  %-7s  %-7s  %-10s  %s\n", "#", "Scene", "FPS", "Target", "Frames", "Drift", "Date")
	fmt.Printf("  %-5s  %-10s  %-8s  %-7s  %-7s  %-10s  %s\n", "-", "-----", "---", "------", "------", "-----", "----")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-10s  %-8.2f  %-7s  %-7d  %-10v  %s\n",
			r.ID, r.SceneID, r.MeasuredFPS, targetLabel(r.TargetFPS), r.Frames,
			r.Drift().Round(10*time.Microsecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if sceneID == "" {
		return
	}
	fmt.Println()
	if best, err := store.BestRun(sceneID); err == nil && best != nil {
		fmt.Printf("Best: %.2f fps (run #%d)\n", best.MeasuredFPS, best.ID)
	}
}

func clearRuns(store *storage.Store, sceneID string) {
	n, err := store.RunCount(sceneID)
	if err != nil {
		fatalf("counting runs: %v", err)
	}
	if err := store.ClearRuns(sceneID); err != nil {
		fatalf("clearing runs: %v", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted %d run(s).\n", n)
}

func targetLabel(fps float64) string {
	if fps < 0 {
		return "max"
	}
	return fmt.Sprintf("%.0f", fps)
}
