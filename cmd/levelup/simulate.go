package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/vovakirdan/levelup/internal/calculator"
	"github.com/vovakirdan/levelup/internal/leveling"
)

// printer groups thousands in command output.
var printer = message.NewPrinter(language.English)

// settingsFlags are the calculator inputs shared by simulate and solve.
type settingsFlags struct {
	tier      string
	nature    string
	start     int
	remaining int
	boost     int
	depletion float64
}

func (f *settingsFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tier, "tier", "", "EXP table tier: 600, 900, 1080, 1320 (default from config)")
	cmd.Flags().StringVar(&f.nature, "nature", "", "Nature: none, boost, reduction (default from config)")
	cmd.Flags().IntVar(&f.start, "start", 0, "Start level (default from config)")
	cmd.Flags().IntVar(&f.remaining, "remaining", 0, "EXP still needed to leave the start level (0 = full requirement)")
	cmd.Flags().IntVar(&f.boost, "boost", 0, "EXP boost rate (default from config)")
	cmd.Flags().Float64Var(&f.depletion, "depletion", 0, "Dream Shards depletion rate (default from config)")
}

// calculator builds a calculator from config defaults and applies the flags.
// Out-of-range values are clamped the same way the interactive form does.
func (f *settingsFlags) calculator(e env) *calculator.Calculator {
	calc, err := calculator.New(e.book, e.cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if f.tier != "" {
		if err := calc.SetTier(leveling.Tier(f.tier)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'levelup tiers' to see available tiers.")
			os.Exit(1)
		}
	}
	if f.nature != "" {
		n := leveling.Nature(f.nature)
		if !n.Valid() {
			fmt.Fprintf(os.Stderr, "Error: unknown nature %q (want none, boost or reduction)\n", f.nature)
			os.Exit(1)
		}
		calc.SetNature(n)
	}
	if f.boost != 0 {
		calc.SetBoostRate(f.boost)
	}
	if f.depletion != 0 {
		calc.SetDepletionRate(f.depletion)
	}
	if f.start != 0 {
		calc.SetStartLevel(f.start)
	}
	if f.remaining != 0 {
		calc.SetInitialRemainingExp(f.remaining)
	}

	return calc
}

var (
	simFlags    settingsFlags
	flagCandies int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Spend a number of candies and print the outcome",
	Long: `Simulate feeding candies one level at a time and print the final level,
the EXP still needed for the next level and the Dream Shards spent.

The candy count is clamped to the number needed to reach the level cap.

Examples:
  levelup simulate --candies 120
  levelup simulate --tier 1080 --start 20 --candies 300 --nature boost --boost 2`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simFlags.bind(simulateCmd)
	simulateCmd.Flags().IntVarP(&flagCandies, "candies", "n", 0, "Number of candies to spend")
}

func runSimulate(_ *cobra.Command, _ []string) {
	e := loadEnv()
	calc := simFlags.calculator(e)
	calc.SetCount(flagCandies)

	if flagCandies > calc.Count() {
		e.logger.Warn("candies clamped to level cap", "requested", flagCandies, "used", calc.Count())
	}

	printOutcome(calc)
}

// printOutcome writes the current calculation in a human-readable form.
func printOutcome(calc *calculator.Calculator) {
	s := calc.Settings()
	res := calc.Outcome()

	printer.Printf("Tier:          %s (%s)\n", s.Tier, s.Tier.Title())
	printer.Printf("Nature:        %s, %d EXP per candy\n", s.Nature.Title(), calc.ItemExp())
	printer.Println()

	capNote := ""
	if res.Capped(calc.Table()) {
		capNote = " (max level)"
	}
	printer.Printf("Lv. %d → Lv. %d%s\n", s.StartLevel, res.FinalLevel, capNote)
	printer.Printf("Until next level:      %d EXP\n", res.RemainingExp)
	printer.Printf("Candies Used:          %d / %d\n", calc.Count(), calc.MaxItems())
	printer.Printf("Required Dream Shards: %v\n", number.Decimal(calc.Shards(), number.MaxFractionDigits(3)))
}
