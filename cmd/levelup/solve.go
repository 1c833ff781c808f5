package main

import (
	"github.com/spf13/cobra"
)

var (
	solveFlags settingsFlags
	flagTarget int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Print the candies needed to reach a target level",
	Long: `Find the fewest candies that take the start level to at least the target
level, then print the resulting outcome.

Targets beyond the level cap are clamped to the cap.

Examples:
  levelup solve --target 30
  levelup solve --tier 900 --start 15 --remaining 200 --target 40 --depletion 1.5`,
	Args: cobra.NoArgs,
	Run:  runSolve,
}

func init() {
	solveFlags.bind(solveCmd)
	solveCmd.Flags().IntVarP(&flagTarget, "target", "t", 0, "Target level (default from config)")
}

func runSolve(_ *cobra.Command, _ []string) {
	e := loadEnv()
	calc := solveFlags.calculator(e)
	if flagTarget != 0 {
		calc.SetTargetLevel(flagTarget)
	}

	n := calc.CalculateTarget()
	e.logger.Debug("solved", "target", calc.Settings().TargetLevel, "candies", n, "bound", calc.MaxItems())

	printer.Printf("Target:        Lv. %d needs %d candies\n", calc.Settings().TargetLevel, n)
	printOutcome(calc)
}
