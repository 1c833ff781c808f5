// Package calculator holds the state of one level-up calculation: the selected
// tier and nature, the starting point, the rate multipliers, the target level
// and the number of candies being spent. All numbers are clamped to what the
// selected EXP table allows.
package calculator

import (
	"fmt"

	"github.com/vovakirdan/levelup/internal/config"
	"github.com/vovakirdan/levelup/internal/leveling"
)

// Settings are the user-editable inputs of a calculation.
type Settings struct {
	Tier                leveling.Tier
	Nature              leveling.Nature
	StartLevel          int
	InitialRemainingExp int
	BoostRate           int
	DepletionRate       float64
	TargetLevel         int
}

// Calculator is a single calculation session.
type Calculator struct {
	book     *leveling.Book
	table    *leveling.Table
	bounds   *BoundCache
	defaults config.Defaults
	limits   config.Limits

	settings Settings
	count    int
}

// New creates a calculator initialised to the configured defaults.
// bounds may be shared between sessions; nil creates a private cache.
func New(book *leveling.Book, cfg config.Config, bounds *BoundCache) (*Calculator, error) {
	if bounds == nil {
		var err error
		if bounds, err = NewBoundCache(DefaultBoundCacheSize); err != nil {
			return nil, err
		}
	}

	c := &Calculator{
		book:     book,
		bounds:   bounds,
		defaults: cfg.Defaults,
		limits:   cfg.Limits,
	}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset restores the configured defaults and zeroes the candy count.
func (c *Calculator) Reset() error {
	tier := leveling.Tier(c.defaults.Tier)
	table, err := c.book.Get(tier)
	if err != nil {
		return fmt.Errorf("calculator: default tier: %w", err)
	}

	c.table = table
	c.count = 0
	c.settings = Settings{
		Tier:          tier,
		Nature:        leveling.Nature(c.defaults.Nature),
		StartLevel:    clamp(c.defaults.StartLevel, 1, table.CapLevel()),
		BoostRate:     clamp(c.defaults.BoostRate, 1, c.limits.MaxBoostRate),
		DepletionRate: clampF(c.defaults.DepletionRate, 1, c.limits.MaxDepletionRate),
	}
	if !c.settings.Nature.Valid() {
		c.settings.Nature = leveling.NatureNone
	}
	c.settings.InitialRemainingExp = table.RequiredExp(c.settings.StartLevel)
	c.settings.TargetLevel = c.clampTarget(c.defaults.TargetLevel)
	return nil
}

// Settings returns a copy of the current inputs.
func (c *Calculator) Settings() Settings {
	return c.settings
}

// Table returns the EXP table of the selected tier.
func (c *Calculator) Table() *leveling.Table {
	return c.table
}

// Tiers returns the tiers available for selection.
func (c *Calculator) Tiers() []leveling.Tier {
	return c.book.Tiers()
}

// Limits returns the configured rate limits.
func (c *Calculator) Limits() config.Limits {
	return c.limits
}

// Count returns the number of candies being spent.
func (c *Calculator) Count() int {
	return c.count
}

// SetTier switches the EXP table. The initial remaining EXP is reset to the
// start level's requirement in the new table.
func (c *Calculator) SetTier(tier leveling.Tier) error {
	table, err := c.book.Get(tier)
	if err != nil {
		return err
	}

	c.table = table
	c.settings.Tier = tier
	c.settings.StartLevel = clamp(c.settings.StartLevel, 1, table.CapLevel())
	c.settings.InitialRemainingExp = table.RequiredExp(c.settings.StartLevel)
	c.settings.TargetLevel = c.clampTarget(c.settings.TargetLevel)
	c.clampCount()
	return nil
}

// SetNature changes the EXP per candy. Unknown natures are ignored.
func (c *Calculator) SetNature(n leveling.Nature) {
	if !n.Valid() {
		return
	}
	c.settings.Nature = n
	c.clampCount()
}

// SetBoostRate sets the EXP boost multiplier.
func (c *Calculator) SetBoostRate(rate int) {
	c.settings.BoostRate = clamp(rate, 1, c.limits.MaxBoostRate)
	c.clampCount()
}

// SetDepletionRate sets the Dream Shards multiplier.
func (c *Calculator) SetDepletionRate(rate float64) {
	c.settings.DepletionRate = clampF(rate, 1, c.limits.MaxDepletionRate)
}

// SetStartLevel moves the starting level. The initial remaining EXP becomes
// that level's full requirement and the target is pushed past the start.
func (c *Calculator) SetStartLevel(level int) {
	level = clamp(level, 1, c.table.CapLevel())
	c.settings.StartLevel = level
	c.settings.InitialRemainingExp = c.table.RequiredExp(level)
	if c.settings.TargetLevel <= level {
		c.settings.TargetLevel = level + 1
	}
	c.settings.TargetLevel = c.clampTarget(c.settings.TargetLevel)
	c.clampCount()
}

// SetInitialRemainingExp sets the EXP still needed to leave the start level,
// clamped to [1, requirement of the start level].
func (c *Calculator) SetInitialRemainingExp(exp int) {
	c.settings.InitialRemainingExp = clamp(exp, 1, max(c.table.RequiredExp(c.settings.StartLevel), 1))
	c.clampCount()
}

// SetTargetLevel sets the level CalculateTarget aims for.
func (c *Calculator) SetTargetLevel(level int) {
	c.settings.TargetLevel = c.clampTarget(level)
}

// SetCount sets the number of candies directly.
func (c *Calculator) SetCount(n int) {
	c.count = clamp(n, 0, c.MaxItems())
}

// AddCount changes the candy count by delta within [0, MaxItems].
func (c *Calculator) AddCount(delta int) {
	c.SetCount(c.count + delta)
}

// ZeroCount sets the candy count to 0.
func (c *Calculator) ZeroCount() {
	c.count = 0
}

// CalculateTarget sets the count to the fewest candies reaching the target.
func (c *Calculator) CalculateTarget() int {
	s := c.settings
	c.count = leveling.SolveForTarget(c.table, s.StartLevel, s.InitialRemainingExp, c.ItemExp(), s.TargetLevel)
	return c.count
}

// ItemExp returns the EXP granted per candy.
func (c *Calculator) ItemExp() int {
	return leveling.ItemExp(c.settings.Nature, c.settings.BoostRate)
}

// MaxItems returns the candies needed to reach the cap from the start.
func (c *Calculator) MaxItems() int {
	s := c.settings
	return c.bounds.Get(c.table, s.StartLevel, s.InitialRemainingExp, c.ItemExp())
}

// Outcome simulates spending the current count.
func (c *Calculator) Outcome() leveling.Result {
	s := c.settings
	return leveling.Simulate(c.table, leveling.Input{
		StartLevel:        s.StartLevel,
		StartRemainingExp: s.InitialRemainingExp,
		ItemExp:           c.ItemExp(),
		ItemCount:         c.count,
	})
}

// Shards returns the Dream Shards cost of the current outcome.
func (c *Calculator) Shards() float64 {
	return leveling.ShardCost(c.Outcome().TotalCost, c.settings.DepletionRate)
}

// Progress returns how far into the final level the outcome is, in [0, 1].
func (c *Calculator) Progress() float64 {
	res := c.Outcome()
	if res.Capped(c.table) {
		return 1
	}

	req := c.table.RequiredExp(res.FinalLevel)
	if req <= 0 {
		return 0
	}
	return clampF(float64(req-res.RemainingExp)/float64(req), 0, 1)
}

// CanDecrease reports whether the count can go down.
func (c *Calculator) CanDecrease() bool {
	return c.count > 0
}

// CanIncrease reports whether the count can go up.
func (c *Calculator) CanIncrease() bool {
	return c.count < c.MaxItems()
}

// clampTarget keeps the target in [start+1, cap].
func (c *Calculator) clampTarget(level int) int {
	lo := min(c.settings.StartLevel+1, c.table.CapLevel())
	return clamp(level, lo, c.table.CapLevel())
}

func (c *Calculator) clampCount() {
	c.count = clamp(c.count, 0, c.MaxItems())
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// clampF restricts a float64 to [lo, hi].
func clampF(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
