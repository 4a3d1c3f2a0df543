package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-forager/internal/games/forager"
	"github.com/vovakirdan/tui-forager/internal/registry"
	"github.com/vovakirdan/tui-forager/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresRun   string
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs of a mode",
	Long: `Display the best recorded runs for the specified mode (default: forager).
Runs are ranked by items collected, then level.

Examples:
  forager scores
  forager scores forager_classic --limit 20
  forager scores --stats
  forager scores --run 01HZX3...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by ID")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics for every mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := forager.ModeStandard
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'forager list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run database: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		showRun(store, flagScoresRun)
	case flagScoresStats:
		showStats(store)
	case flagScoresClear:
		if err := store.ClearRuns(mode); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared all runs of %s.\n", mode)
	default:
		showTop(store, mode)
	}
}

func showTop(store *storage.Store, mode string) {
	runs, err := store.TopRuns(mode, flagScoresLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Best Runs - %s\n", mode)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'forager play %s' and quit to record a run.\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-7s  %-6s  %-10s  %s\n", "Rank", "Collected", "Level", "Crafted", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-7s  %-6s  %-10s  %s\n", "----", "---------", "-----", "-------", "----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-9d  %-5d  %-7d  %-6s  %-10s  %s\n",
			i+1, r.Collected, r.Level, r.Crafted, clock(r.Duration.Seconds()), player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(mode); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func showRun(store *storage.Store, id string) {
	r, err := store.Run(id)
	if errors.Is(err, storage.ErrNotFound) {
		fail("no run with ID %q", id)
	}
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Run %s\n", r.ID)
	fmt.Printf("  Mode:      %s\n", r.Mode)
	if r.Player != "" {
		fmt.Printf("  Player:    %s\n", r.Player)
	}
	fmt.Printf("  Collected: %d\n", r.Collected)
	fmt.Printf("  Level:     %d\n", r.Level)
	fmt.Printf("  Crafted:   %d\n", r.Crafted)
	fmt.Printf("  Time:      %s\n", clock(r.Duration.Seconds()))
	fmt.Printf("  Date:      %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
}

func showStats(store *storage.Store) {
	stats, err := store.AllModeStats()
	if err != nil {
		fail("%v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	fmt.Printf("  %-16s  %-5s  %-5s  %-7s  %-7s  %-8s  %s\n", "Mode", "Runs", "Best", "Avg", "Crafted", "MaxLevel", "Last played")
	for _, m := range modes {
		s := stats[m]
		fmt.Printf("  %-16s  %-5d  %-5d  %-7.1f  %-7d  %-8d  %s\n",
			s.Mode, s.RunsCount, s.BestScore, s.AvgScore, s.TotalCrafted, s.MaxLevel, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func clock(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
