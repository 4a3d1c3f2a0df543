package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes [id]",
	Short: "List recipes or show one",
	Long: `Without arguments, lists the recipe catalog in crafting order (the
number is the key that crafts it). With an ID, shows that recipe; unknown
IDs get suggestions.

Examples:
  forager recipes
  forager recipes pickaxe
  forager recipes --config ./my-forager.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecipes,
}

func runRecipes(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		fail("%v", err)
	}

	if len(args) == 0 {
		fmt.Println("Recipes:")
		fmt.Println()
		for i, r := range catalog.All() {
			fmt.Printf("  %d  %-10s  %s\n", i+1, r.Name, r.CostString())
		}
		fmt.Println()
		fmt.Println("Press C in a session to open the crafting panel.")
		return
	}

	r, ok := catalog.Lookup(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown recipe %q\n", args[0])
		if s := catalog.Suggest(args[0], 3); len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", strings.Join(s, ", "))
		}
		os.Exit(1)
	}

	fmt.Printf("%s (%s)\n", r.Name, r.ID)
	if r.Description != "" {
		fmt.Printf("  %s\n", r.Description)
	}
	fmt.Printf("  Result: 1 %s\n", r.Result.Info().Name)
	fmt.Printf("  Cost:   %s\n", r.CostString())
}
