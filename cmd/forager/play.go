package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-forager/internal/games/forager"
	"github.com/vovakirdan/tui-forager/internal/platform/spectate"
	"github.com/vovakirdan/tui-forager/internal/platform/tui"
	"github.com/vovakirdan/tui-forager/internal/registry"
)

var flagSpectate string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a forager session in the specified mode (default: forager).

Controls:
  WASD/Arrows  - Move
  Space        - Attack
  C            - Toggle crafting panel
  1-9          - Craft recipe by number
  X            - Clear inventory
  P/Esc        - Pause
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit (the run is recorded)

Presets:
  easy    - Faster spawning, more resources on the field
  normal  - Default settings
  hard    - Slower spawning, fewer resources

Spectating:
  --spectate :8080 streams snapshots to ws://host:8080/ws

Examples:
  forager play
  forager play forager_classic
  forager play --preset easy --seed 7
  forager play --config ./my-forager.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve spectator websocket on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, args []string) {
	mode := forager.ModeStandard
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'forager list' to see available modes.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(true, "forager")
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lib := loadAssets(ctx, logger)

	game, err := registry.Create(mode, registry.Options{Config: cfg, Logger: logger, Assets: lib})
	if err != nil {
		fail("creating session: %v", err)
	}

	opts := tui.Options{
		Config: runtimeConfig(),
		Logger: logger,
	}

	if flagSpectate != "" {
		hub, srv := startSpectate(flagSpectate, logger)
		defer func() {
			hub.Close()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
			defer stop()
			srv.Shutdown(shutdownCtx)
		}()
		opts.Publish = hub
	}

	store := openStore()
	opts.Store = store

	final, runErr := tui.Run(game, opts)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running session: %v", runErr)
	}
	if id := final.SavedRunID(); id != "" {
		fmt.Printf("Run %s recorded: %d collected.\n", id, final.LastResult().State.Score)
	}
}

// startSpectate serves the spectator hub in the background.
func startSpectate(addr string, logger *log.Logger) (*spectate.Hub, *http.Server) {
	hub := spectate.NewHub(logger.WithPrefix("spectate"))
	srv := &http.Server{
		Addr:              addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server stopped", "err", err)
		}
	}()
	logger.Info("spectator stream", "addr", addr)
	return hub, srv
}
