package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/number"

	"github.com/vovakirdan/levelup/internal/leveling"
	"github.com/vovakirdan/levelup/internal/storage"
)

var (
	flagHistoryTier  string
	flagHistoryLimit int
	flagHistoryStats bool
	flagHistoryClear bool
	flagHistoryID    int64
	flagHistoryNote  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved calculations",
	Long: `Display calculations saved from the interactive calculator, newest first.

Examples:
  levelup history
  levelup history --tier 900 --limit 5
  levelup history --stats
  levelup history --id 12
  levelup history --id 12 --note "before the event"
  levelup history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryTier, "tier", "", "Only show calculations for this tier")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of calculations to show")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show per-tier totals instead of entries")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all saved calculations")
	historyCmd.Flags().Int64Var(&flagHistoryID, "id", 0, "Show one calculation in detail")
	historyCmd.Flags().StringVar(&flagHistoryNote, "note", "", "Set the note of the calculation given by --id")
}

func runHistory(_ *cobra.Command, _ []string) {
	e := loadEnv()

	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		e.logger.Info("history cleared", "db", e.cfg.Storage.DBPath)
		fmt.Println("History cleared.")

	case flagHistoryStats:
		printStats(store)

	case flagHistoryID != 0:
		if flagHistoryNote != "" {
			if err := store.SetNote(flagHistoryID, flagHistoryNote); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			e.logger.Debug("note saved", "id", flagHistoryID)
		}
		printCalculation(store, flagHistoryID)

	default:
		printHistory(store)
	}
}

func printHistory(store *storage.Store) {
	items, err := store.RecentCalculations(flagHistoryTier, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if len(items) == 0 {
		fmt.Println("No saved calculations yet.")
		fmt.Println()
		fmt.Println("Press s in 'levelup' to save one.")
		return
	}

	printer.Printf("  %-5s  %-5s  %-10s  %-11s  %8s  %12s  %s\n", "#", "Tier", "Nature", "Levels", "Candies", "Shards", "Date")
	printer.Printf("  %-5s  %-5s  %-10s  %-11s  %8s  %12s  %s\n", "-", "----", "------", "------", "-------", "------", "----")

	for _, c := range items {
		levels := fmt.Sprintf("%d → %d", c.StartLevel, c.FinalLevel)
		printer.Printf("  %-5d  %-5s  %-10s  %-11s  %8d  %12v  %s\n",
			c.ID,
			c.Tier,
			leveling.Nature(c.Nature).Title(),
			levels,
			c.Candies,
			number.Decimal(c.Shards, number.MaxFractionDigits(3)),
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No saved calculations yet.")
		return
	}

	tiers := make([]leveling.Tier, 0, len(stats))
	for tier := range stats {
		tiers = append(tiers, leveling.Tier(tier))
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Less(tiers[j]) })

	printer.Printf("  %-5s  %6s  %10s  %14s  %s\n", "Tier", "Saved", "Candies", "Shards", "Last saved")
	printer.Printf("  %-5s  %6s  %10s  %14s  %s\n", "----", "-----", "-------", "------", "----------")

	for _, tier := range tiers {
		ts := stats[string(tier)]
		printer.Printf("  %-5s  %6d  %10d  %14v  %s\n",
			ts.Tier,
			ts.Count,
			ts.TotalCandies,
			number.Decimal(ts.TotalShards, number.MaxFractionDigits(3)),
			ts.LastSaved.Local().Format("2006-01-02 15:04"),
		)
	}
}

func printCalculation(store *storage.Store, id int64) {
	c, err := store.CalculationByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving calculation: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		fmt.Fprintf(os.Stderr, "Error: no saved calculation #%d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'levelup history' to list saved calculations.")
		os.Exit(1)
	}

	tier := leveling.Tier(c.Tier)
	printer.Printf("Calculation #%d, saved %s\n", c.ID, c.CreatedAt.Local().Format("2006-01-02 15:04"))
	printer.Println()
	printer.Printf("Tier:                  %s (%s)\n", tier, tier.Title())
	printer.Printf("Nature:                %s\n", leveling.Nature(c.Nature).Title())
	printer.Printf("Start:                 Lv. %d, %d EXP to next level\n", c.StartLevel, c.InitialRemainingExp)
	printer.Printf("EXP Boost Rate:        %d\n", c.BoostRate)
	printer.Printf("Depletion Rate:        %v\n", c.DepletionRate)
	printer.Printf("Target Level:          %d\n", c.TargetLevel)
	printer.Println()
	printer.Printf("Lv. %d → Lv. %d\n", c.StartLevel, c.FinalLevel)
	printer.Printf("Until next level:      %d EXP\n", c.RemainingExp)
	printer.Printf("Candies Used:          %d\n", c.Candies)
	printer.Printf("Required Dream Shards: %v\n", number.Decimal(c.Shards, number.MaxFractionDigits(3)))
	if c.Note != "" {
		printer.Println()
		printer.Printf("Note: %s\n", c.Note)
	}
}
