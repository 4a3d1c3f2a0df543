// forager is a terminal resource-gathering simulation: roam a field,
// collect resources and craft tools from them.
//
// Usage:
//
//	forager list              - List available modes
//	forager play [mode]       - Play a mode (default: forager)
//	forager menu              - Pick modes interactively
//	forager serve             - Start SSH server for remote play
//	forager scores [mode]     - Show the best runs of a mode
//	forager recipes [id]      - List recipes or show one
//	forager schema            - Print the spectator snapshot schema
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible sessions
//	--db <path>         - Set database path (default: ~/.forager/runs.db)
//	--config <path>     - Load a custom forager.yaml
//	--preset <name>     - Spawn preset: easy, normal, hard
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Log destination while the TUI is running
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-forager/internal/games/forager"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "forager",
	Short: "Forager - gather resources and craft tools in your terminal",
	Long: `Forager is a terminal resource-gathering simulation. Move around a
field, collect apples, grass, stone and wood, level up, and craft tools.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  recipes  - Inspect the recipe catalog
  schema   - Print the spectator snapshot JSON schema

Examples:
  forager play
  forager play forager_classic --seed 42
  forager play --preset hard --spectate :8080
  forager serve --ssh :2222
  forager recipes axe`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.forager/runs.db", "Path to run history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom forager.yaml")
	pf.StringVar(&flagPreset, "preset", "", "Spawn preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.forager/forager.log", "Log file used while the TUI is running")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(schemaCmd)
}
