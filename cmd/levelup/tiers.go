package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the loaded EXP tables",
	Long: `Shows every EXP table tier with its level cap and where it was loaded from.
Tables in the --tables directory, ~/.levelup/tables or ./tables replace the
built-in table of the same tier.`,
	Args: cobra.NoArgs,
	Run:  runTiers,
}

func runTiers(_ *cobra.Command, _ []string) {
	e := loadEnv()

	if len(e.sources) == 0 {
		fmt.Println("No EXP tables loaded.")
		return
	}

	fmt.Println("EXP tables:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, src := range e.sources {
		maxNameLen = max(maxNameLen, len(src.Name))
	}

	fmt.Printf("  %-5s  %-*s  %-5s  %-4s  %s\n", "Tier", maxNameLen, "Name", "EXP", "Cap", "Source")
	fmt.Printf("  %-5s  %-*s  %-5s  %-4s  %s\n", "----", maxNameLen, "----", "---", "---", "------")

	for _, src := range e.sources {
		mult := "-"
		if src.Multiplier > 0 {
			mult = fmt.Sprintf("x%g", src.Multiplier)
		}
		fmt.Printf("  %-5s  %-*s  %-5s  %-4d  %s\n", src.Tier, maxNameLen, src.Name, mult, src.CapLevel, src.FilePath)
	}

	fmt.Println()
	fmt.Println("Run 'levelup solve --tier <tier> --target <level>' to plan a level-up.")
}
