package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-forager/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the forager SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu and its
own simulation. Runs are stored per-server (all users share the history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.forager/host_key

Examples:
  forager serve                           # Listen on :23234 with auto-generated key
  forager serve --ssh :2222               # Listen on port 2222
  forager serve --host-key ./my_host_key  # Use specific host key
  forager serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, _, err := newLogger(false, "forager")
	if err != nil {
		fail("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Game:        gameCfg,
		Assets:      loadAssets(ctx, logger),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting forager SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
