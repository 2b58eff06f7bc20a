package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stage/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stage SSH server",
	Long: `Start an SSH server that lets users connect and watch scenes.

Each SSH connection gets its own session with a scene picker menu and its
own clock. Stored runs are shared by every session.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stage/host_key

Examples:
  stage serve                           # Listen on :23234 with auto-generated key
  stage serve --ssh :2222               # Listen on port 2222
  stage serve --host-key ./my_host_key  # Use specific host key
  stage serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	stageCfg, err := loadConfig(cmd)
	if err != nil {
		fatalf("%v", err)
	}

	logger, closer, err := newLogger(stageCfg, os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Stage:       stageCfg,
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("stage-ssh"))
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting stage SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(cmd.Context()); err != nil {
		fatalf("server: %v", err)
	}
}
