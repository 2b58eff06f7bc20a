// stage plays animated scenes in the terminal on a fixed-rate frame clock.
//
// Usage:
//
//	stage list              - List available scenes
//	stage play [scene]      - Play a scene, or pick one from a menu
//	stage serve             - Start SSH server for remote viewing
//	stage bench <scene>     - Measure how well the clock keeps pace
//	stage runs [scene]      - Show stored benchmark runs
//
// Global flags:
//
//	--fps <rate>       - Override the clock rate (negative = uncapped)
//	--preset <name>    - Use a named rate preset (eco, cinema, smooth, uncapped)
//	--config <path>    - Load configuration from a YAML file
//	--db <path>        - Set database path (default: ~/.stage/runs.db)
//	--log <path>       - Append logs to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/logging"

	// Import demos to register them
	_ "github.com/vovakirdan/tui-stage/internal/demos/bounce"
	_ "github.com/vovakirdan/tui-stage/internal/demos/cursor"
	_ "github.com/vovakirdan/tui-stage/internal/demos/loading"
)

var (
	// Global flags
	flagFPS     float64
	flagPreset  string
	flagConfig  string
	flagDBPath  string
	flagLogPath string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stage",
	Short: "Stage - Animated scenes in your terminal",
	Long: `Stage paints animated scenes into your terminal on a fixed-rate
frame clock, using half-block characters for two pixels per cell.

Available commands:
  list     - Show all available scenes
  play     - Play a scene directly, or pick one from a menu
  serve    - Start SSH server for remote viewing
  bench    - Benchmark a scene against a headless display
  runs     - View stored benchmark runs

Examples:
  stage list
  stage play bounce
  stage play cursor --fps 60
  stage serve --ssh :2222
  stage bench loading --duration 5s --save
  stage runs bounce`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Float64Var(&flagFPS, "fps", 0, "Clock rate in frames per second (0 = from config, negative = uncapped)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Rate preset: eco, cinema, smooth, uncapped")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stage/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadConfig loads the configuration and applies the global flags.
// --preset is applied before --fps so an explicit rate wins.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg, config.RatePreset(flagPreset)); err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("fps") {
		cfg.Clock.FPS = flagFPS
	}
	if flagLogPath != "" {
		cfg.Logging.File = flagLogPath
	}
	return cfg, cfg.Validate()
}

// newLogger builds the command logger. Without a log file, output goes to
// fallback; pass nil when a terminal UI owns the screen.
func newLogger(cfg config.Config, fallback io.Writer) (*log.Logger, io.Closer, error) {
	return logging.New(cfg.Logging, "stage", fallback)
}

// terminalSize returns the size of stdout in cells, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// isTerminal reports whether stdin and stdout are both terminals.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
