package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelup/internal/config"
	"github.com/vovakirdan/levelup/internal/leveling"
)

func testBook(t *testing.T) *leveling.Book {
	t.Helper()

	common, err := leveling.NewTable([]leveling.Entry{
		{RequiredExp: 1000, Cost: 5},
		{RequiredExp: 1500, Cost: 7},
		{RequiredExp: 2000, Cost: 9},
		{RequiredExp: 2500, Cost: 11},
		{RequiredExp: 3000, Cost: 13},
	})
	require.NoError(t, err)

	pseudo, err := leveling.NewTable([]leveling.Entry{
		{RequiredExp: 1500, Cost: 5},
		{RequiredExp: 2250, Cost: 7},
		{RequiredExp: 3000, Cost: 9},
	})
	require.NoError(t, err)

	book := leveling.NewBook()
	book.Add(leveling.Tier600, common)
	book.Add(leveling.Tier900, pseudo)
	return book
}

func newCalc(t *testing.T) *Calculator {
	t.Helper()
	c, err := New(testBook(t), config.Default(), nil)
	require.NoError(t, err)
	return c
}

func TestNewUsesDefaults(t *testing.T) {
	c := newCalc(t)

	assert.Equal(t, Settings{
		Tier:                leveling.Tier600,
		Nature:              leveling.NatureNone,
		StartLevel:          1,
		InitialRemainingExp: 1000,
		BoostRate:           1,
		DepletionRate:       1,
		TargetLevel:         2,
	}, c.Settings())
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 280, c.MaxItems())
	assert.False(t, c.CanDecrease())
	assert.True(t, c.CanIncrease())
}

func TestNewUnknownDefaultTier(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.Tier = "1320"

	_, err := New(testBook(t), cfg, nil)
	assert.ErrorIs(t, err, leveling.ErrUnknownTier)
}

func TestCalculateTarget(t *testing.T) {
	c := newCalc(t)

	assert.Equal(t, 40, c.CalculateTarget())
	res := c.Outcome()
	assert.Equal(t, 2, res.FinalLevel)
	assert.Equal(t, 1500, res.RemainingExp)
	assert.InDelta(t, 200.0, c.Shards(), 1e-9)
	assert.InDelta(t, 0.0, c.Progress(), 1e-9)

	c.SetTargetLevel(4)
	assert.Equal(t, 40+60+80, c.CalculateTarget())
}

func TestAddCountClamps(t *testing.T) {
	c := newCalc(t)

	c.AddCount(10)
	assert.Equal(t, 10, c.Count())
	assert.InDelta(t, 0.25, c.Progress(), 1e-9)

	c.AddCount(1000)
	assert.Equal(t, 280, c.Count())
	assert.False(t, c.CanIncrease())
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)

	c.AddCount(-1000)
	assert.Equal(t, 0, c.Count())

	c.AddCount(5)
	c.ZeroCount()
	assert.Equal(t, 0, c.Count())
}

func TestDepletionRateScalesTotal(t *testing.T) {
	c := newCalc(t)
	c.SetCount(40)

	c.SetDepletionRate(1.5)
	assert.InDelta(t, 300.0, c.Shards(), 1e-9)

	c.SetDepletionRate(99)
	assert.InDelta(t, 10.0, c.Settings().DepletionRate, 1e-9)

	c.SetDepletionRate(0)
	assert.InDelta(t, 1.0, c.Settings().DepletionRate, 1e-9)
}

func TestSetTierResetsRemainingExp(t *testing.T) {
	c := newCalc(t)
	c.SetCount(250)

	require.NoError(t, c.SetTier(leveling.Tier900))
	s := c.Settings()
	assert.Equal(t, 1500, s.InitialRemainingExp)
	assert.Equal(t, 150, c.MaxItems())
	assert.Equal(t, 150, c.Count())

	err := c.SetTier("9999")
	assert.ErrorIs(t, err, leveling.ErrUnknownTier)
	assert.Equal(t, leveling.Tier900, c.Settings().Tier)
}

func TestSetStartLevel(t *testing.T) {
	c := newCalc(t)

	c.SetStartLevel(3)
	s := c.Settings()
	assert.Equal(t, 3, s.StartLevel)
	assert.Equal(t, 2000, s.InitialRemainingExp)
	assert.Equal(t, 4, s.TargetLevel)

	c.SetStartLevel(99)
	s = c.Settings()
	assert.Equal(t, 5, s.StartLevel)
	assert.Equal(t, 5, s.TargetLevel)
	assert.Equal(t, 0, c.MaxItems())

	c.SetStartLevel(-4)
	assert.Equal(t, 1, c.Settings().StartLevel)
}

func TestClampedInputs(t *testing.T) {
	c := newCalc(t)

	c.SetInitialRemainingExp(0)
	assert.Equal(t, 1, c.Settings().InitialRemainingExp)
	c.SetInitialRemainingExp(99999)
	assert.Equal(t, 1000, c.Settings().InitialRemainingExp)

	c.SetTargetLevel(1)
	assert.Equal(t, 2, c.Settings().TargetLevel)
	c.SetTargetLevel(99)
	assert.Equal(t, 5, c.Settings().TargetLevel)

	c.SetBoostRate(0)
	assert.Equal(t, 1, c.Settings().BoostRate)
	c.SetBoostRate(20)
	assert.Equal(t, 10, c.Settings().BoostRate)
	assert.Equal(t, 250, c.ItemExp())

	c.SetNature(leveling.NatureBoost)
	assert.Equal(t, 300, c.ItemExp())
	c.SetNature("sleepy")
	assert.Equal(t, leveling.NatureBoost, c.Settings().Nature)
}

func TestReset(t *testing.T) {
	c := newCalc(t)
	want := c.Settings()

	require.NoError(t, c.SetTier(leveling.Tier900))
	c.SetNature(leveling.NatureReduction)
	c.SetStartLevel(2)
	c.SetCount(12)

	require.NoError(t, c.Reset())
	assert.Equal(t, want, c.Settings())
	assert.Equal(t, 0, c.Count())
}

func TestBoundCacheShared(t *testing.T) {
	bounds, err := NewBoundCache(8)
	require.NoError(t, err)

	book := testBook(t)
	a, err := New(book, config.Default(), bounds)
	require.NoError(t, err)
	b, err := New(book, config.Default(), bounds)
	require.NoError(t, err)

	assert.Equal(t, a.MaxItems(), b.MaxItems())
	assert.Equal(t, 1, bounds.Len())
}

func TestParse(t *testing.T) {
	assert.Equal(t, 12, ParseInt("12"))
	assert.Equal(t, 1000, ParseInt(" 1,000 "))
	assert.Equal(t, 1, ParseInt("1.9"))
	assert.Equal(t, 0, ParseInt("abc"))
	assert.Equal(t, 0, ParseInt(""))
	assert.InDelta(t, 1.5, ParseFloat("1.5"), 1e-9)
	assert.InDelta(t, 0.0, ParseFloat("NaN"), 1e-9)
}
