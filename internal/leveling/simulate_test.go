package leveling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, entries ...Entry) *Table {
	t.Helper()
	tbl, err := NewTable(entries)
	require.NoError(t, err)
	return tbl
}

func sampleTable(t *testing.T) *Table {
	return mustTable(t,
		Entry{RequiredExp: 1000, Cost: 5},
		Entry{RequiredExp: 1500, Cost: 7},
		Entry{RequiredExp: 2000, Cost: 9},
		Entry{RequiredExp: 2500, Cost: 11},
		Entry{RequiredExp: 3000, Cost: 13},
	)
}

func TestSimulateExamples(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		name string
		in   Input
		want Result
	}{
		{
			name: "exact fill of level 1",
			in:   Input{StartLevel: 1, StartRemainingExp: 1000, ItemExp: 25, ItemCount: 40},
			want: Result{FinalLevel: 2, RemainingExp: 1500, TotalCost: 200, ProcessedCount: 40},
		},
		{
			name: "candies run out inside level",
			in:   Input{StartLevel: 1, StartRemainingExp: 1000, ItemExp: 25, ItemCount: 10},
			want: Result{FinalLevel: 1, RemainingExp: 750, TotalCost: 50, ProcessedCount: 10},
		},
		{
			name: "partial fill of next level",
			in:   Input{StartLevel: 1, StartRemainingExp: 1000, ItemExp: 25, ItemCount: 50},
			want: Result{FinalLevel: 2, RemainingExp: 1250, TotalCost: 200 + 70, ProcessedCount: 50},
		},
		{
			name: "zero candies",
			in:   Input{StartLevel: 2, StartRemainingExp: 300, ItemExp: 25, ItemCount: 0},
			want: Result{FinalLevel: 2, RemainingExp: 300},
		},
		{
			name: "zero item exp",
			in:   Input{StartLevel: 1, StartRemainingExp: 1000, ItemExp: 0, ItemCount: 99},
			want: Result{FinalLevel: 1, RemainingExp: 1000},
		},
		{
			name: "start level missing",
			in:   Input{StartLevel: 42, StartRemainingExp: 10, ItemExp: 25, ItemCount: 5},
			want: Result{FinalLevel: 42, RemainingExp: 10},
		},
		{
			name: "start at cap",
			in:   Input{StartLevel: 5, StartRemainingExp: 3000, ItemExp: 25, ItemCount: 5},
			want: Result{FinalLevel: 5, RemainingExp: 0},
		},
		{
			name: "too many candies stop at cap",
			in:   Input{StartLevel: 1, StartRemainingExp: 1000, ItemExp: 25, ItemCount: 10000},
			want: Result{FinalLevel: 5, RemainingExp: 0, TotalCost: 40*5 + 60*7 + 80*9 + 100*11, ProcessedCount: 280},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Simulate(tbl, tt.in))
		})
	}
}

func TestSimulateOverflowCrossesLevels(t *testing.T) {
	tbl := mustTable(t,
		Entry{RequiredExp: 10, Cost: 1},
		Entry{RequiredExp: 5, Cost: 2},
		Entry{RequiredExp: 5, Cost: 3},
		Entry{RequiredExp: 50, Cost: 4},
		Entry{RequiredExp: 50, Cost: 5},
	)

	// One 30 EXP candy clears level 1 (10) and carries 20: clears 2 (5) and 3 (5), 10 into level 4
	got := Simulate(tbl, Input{StartLevel: 1, StartRemainingExp: 10, ItemExp: 30, ItemCount: 1})
	assert.Equal(t, Result{FinalLevel: 4, RemainingExp: 40, TotalCost: 1, ProcessedCount: 1}, got)

	// Overflow that exactly covers a level lands at the start of the following one
	got = Simulate(tbl, Input{StartLevel: 1, StartRemainingExp: 10, ItemExp: 15, ItemCount: 1})
	assert.Equal(t, Result{FinalLevel: 3, RemainingExp: 5, TotalCost: 1, ProcessedCount: 1}, got)
}

func TestSimulateOverflowIntoCap(t *testing.T) {
	tbl := mustTable(t,
		Entry{RequiredExp: 10, Cost: 1},
		Entry{RequiredExp: 10, Cost: 2},
		Entry{RequiredExp: 10, Cost: 3},
	)

	got := Simulate(tbl, Input{StartLevel: 1, StartRemainingExp: 10, ItemExp: 100, ItemCount: 3})
	assert.Equal(t, Result{FinalLevel: 3, RemainingExp: 0, TotalCost: 1, ProcessedCount: 1}, got)
	assert.True(t, got.Capped(tbl))
}

func TestSimulateMonotone(t *testing.T) {
	tbl := sampleTable(t)

	for _, itemExp := range []int{7, 25, 30, 21, 333} {
		var prev Result
		bound := MaxFeasibleItems(tbl, 1, 640, itemExp)
		for n := 0; n <= bound+10; n++ {
			got := Simulate(tbl, Input{StartLevel: 1, StartRemainingExp: 640, ItemExp: itemExp, ItemCount: n})

			require.GreaterOrEqual(t, got.FinalLevel, prev.FinalLevel, "level, exp=%d n=%d", itemExp, n)
			require.GreaterOrEqual(t, got.TotalCost, prev.TotalCost, "cost, exp=%d n=%d", itemExp, n)
			require.LessOrEqual(t, got.ProcessedCount, n)
			if !got.Capped(tbl) {
				require.Equal(t, n, got.ProcessedCount, "exp=%d n=%d", itemExp, n)
			}
			prev = got
		}
	}
}

func TestSimulateHugeItemCount(t *testing.T) {
	tbl := sampleTable(t)
	bound := MaxFeasibleItems(tbl, 1, 640, 25)
	capped := Simulate(tbl, Input{StartLevel: 1, StartRemainingExp: 640, ItemExp: 25, ItemCount: bound})

	for _, n := range []int{math.MaxInt / 25, math.MaxInt/25 + 1, math.MaxInt} {
		got := Simulate(tbl, Input{StartLevel: 1, StartRemainingExp: 640, ItemExp: 25, ItemCount: n})
		assert.Equal(t, capped, got, "n=%d", n)
	}
}

func TestMaxFeasibleItems(t *testing.T) {
	two := mustTable(t,
		Entry{RequiredExp: 1000, Cost: 5},
		Entry{RequiredExp: 1500, Cost: 7},
	)
	assert.Equal(t, 40, MaxFeasibleItems(two, 1, 1000, 25))
	assert.Equal(t, 0, MaxFeasibleItems(two, 2, 1500, 25))
	assert.Equal(t, 0, MaxFeasibleItems(two, 7, 1500, 25))
	assert.Equal(t, 0, MaxFeasibleItems(two, 1, 1000, 0))

	tbl := sampleTable(t)
	assert.Equal(t, 280, MaxFeasibleItems(tbl, 1, 1000, 25))
}

func TestMaxFeasibleItemsIsSmallestCappingCount(t *testing.T) {
	tbl := sampleTable(t)

	for _, itemExp := range []int{3, 25, 30, 21, 999} {
		bound := MaxFeasibleItems(tbl, 2, 1111, itemExp)
		in := Input{StartLevel: 2, StartRemainingExp: 1111, ItemExp: itemExp}

		in.ItemCount = bound
		assert.Equal(t, tbl.CapLevel(), Simulate(tbl, in).FinalLevel, "exp=%d", itemExp)

		in.ItemCount = bound - 1
		assert.Less(t, Simulate(tbl, in).FinalLevel, tbl.CapLevel(), "exp=%d", itemExp)
	}
}

func TestSolveForTarget(t *testing.T) {
	tbl := sampleTable(t)

	for _, itemExp := range []int{25, 30, 21, 400} {
		bound := MaxFeasibleItems(tbl, 1, 1000, itemExp)
		for target := 1; target <= tbl.CapLevel()+1; target++ {
			got := SolveForTarget(tbl, 1, 1000, itemExp, target)

			// Brute force the smallest count reaching the target
			want := bound
			for n := 0; n <= bound; n++ {
				in := Input{StartLevel: 1, StartRemainingExp: 1000, ItemExp: itemExp, ItemCount: n}
				if Simulate(tbl, in).FinalLevel >= target {
					want = n
					break
				}
			}
			assert.Equal(t, want, got, "exp=%d target=%d", itemExp, target)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, bound)
		}
	}
}

func TestSolveForTargetBoundaries(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, 0, SolveForTarget(tbl, 3, 2000, 25, 3))
	assert.Equal(t, 0, SolveForTarget(tbl, 3, 2000, 25, 1))
	assert.Equal(t, 40, SolveForTarget(tbl, 1, 1000, 25, 2))

	// Unreachable targets saturate at the bound
	assert.Equal(t, 280, SolveForTarget(tbl, 1, 1000, 25, 99))
}

func TestShardCostAppliesRateToTotal(t *testing.T) {
	assert.InDelta(t, 200.0, ShardCost(200, 1), 1e-9)
	assert.InDelta(t, 300.0, ShardCost(200, 1.5), 1e-9)
	assert.InDelta(t, 4.5, ShardCost(3, 1.5), 1e-9)
}

func TestItemExp(t *testing.T) {
	assert.Equal(t, 25, ItemExp(NatureNone, 1))
	assert.Equal(t, 60, ItemExp(NatureBoost, 2))
	assert.Equal(t, 21, ItemExp(NatureReduction, 1))
	assert.Equal(t, 25, ItemExp(Nature("bogus"), 1))
}
