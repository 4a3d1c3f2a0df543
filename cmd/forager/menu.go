package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-forager/internal/platform/tui"
	"github.com/vovakirdan/tui-forager/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start forager with a mode picker menu",
	Long: `Start forager in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, Tab for the
best runs. Quitting a session records it and returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Best runs
  Q            - Quit

Examples:
  forager menu
  forager menu --fps 30
  forager menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg, err := loadConfig()
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

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}

		game, err := registry.Create(menuResult.GameID, registry.Options{Config: gameCfg, Logger: logger, Assets: lib})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
			continue
		}

		// Fresh seed for each session unless one was given
		rt := cfg
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		if _, err := tui.Run(game, tui.Options{Store: store, Config: rt, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
		}
	}
}
