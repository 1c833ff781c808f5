package leveling

// Input is the starting state for a simulation.
type Input struct {
	StartLevel        int
	StartRemainingExp int // EXP still needed to leave StartLevel
	ItemExp           int // EXP granted per candy
	ItemCount         int // Candies available to spend
}

// Result is the outcome of spending candies.
type Result struct {
	FinalLevel     int
	RemainingExp   int // EXP still needed to leave FinalLevel; 0 when capped
	TotalCost      int // Dream Shards before the depletion rate is applied
	ProcessedCount int // Candies actually consumed
}

// Capped reports whether the result sits at the table's cap level.
func (r Result) Capped(t *Table) bool {
	return r.FinalLevel >= t.CapLevel()
}

// Simulate spends up to in.ItemCount candies starting from in.StartLevel.
// Candies are spent level by level; overflow EXP carries into the following
// levels. Spending stops when candies run out or the cap is reached.
func Simulate(t *Table, in Input) Result {
	res := Result{
		FinalLevel:   in.StartLevel,
		RemainingExp: max(in.StartRemainingExp, 0),
	}

	if !t.Has(in.StartLevel) {
		return res
	}
	if in.StartLevel >= t.CapLevel() {
		res.RemainingExp = 0
		return res
	}
	if in.ItemExp <= 0 || in.ItemCount <= 0 {
		return res
	}

	level, remaining, items := in.StartLevel, res.RemainingExp, in.ItemCount
	for items > 0 {
		cost := t.entries[level-1].Cost
		need := ceilDiv(remaining, in.ItemExp)

		// Not enough candies left to finish this level
		if items < need {
			res.TotalCost += cost * items
			res.ProcessedCount += items
			remaining -= items * in.ItemExp
			break
		}

		res.TotalCost += cost * need
		res.ProcessedCount += need
		items -= need

		var capped bool
		level, remaining, capped = t.carry(level, need*in.ItemExp-remaining)
		if capped {
			break
		}
	}

	res.FinalLevel = level
	res.RemainingExp = remaining
	return res
}

// MaxFeasibleItems returns how many candies it takes to go from the starting
// state to the cap level. Spending more than this has no effect.
func MaxFeasibleItems(t *Table, startLevel, startRemainingExp, itemExp int) int {
	if !t.Has(startLevel) || startLevel >= t.CapLevel() || itemExp <= 0 {
		return 0
	}

	level, remaining, total := startLevel, max(startRemainingExp, 0), 0
	for {
		need := ceilDiv(remaining, itemExp)
		total += need

		var capped bool
		level, remaining, capped = t.carry(level, need*itemExp-remaining)
		if capped {
			return total
		}
	}
}

// SolveForTarget returns the fewest candies that bring the starting state to
// targetLevel or beyond. When the target cannot be reached the result is the
// feasibility bound.
func SolveForTarget(t *Table, startLevel, startRemainingExp, itemExp, targetLevel int) int {
	hi := MaxFeasibleItems(t, startLevel, startRemainingExp, itemExp)
	lo, ans := 0, hi

	in := Input{
		StartLevel:        startLevel,
		StartRemainingExp: startRemainingExp,
		ItemExp:           itemExp,
	}

	// More candies never lower the final level, so the predicate is monotone
	for lo <= hi {
		mid := lo + (hi-lo)/2
		in.ItemCount = mid
		if Simulate(t, in).FinalLevel >= targetLevel {
			ans = mid
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	return ans
}

// ceilDiv divides rounding up; non-positive numerators yield 0.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
