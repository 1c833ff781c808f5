package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelup/internal/leveling"
)

const smallTable = `
tier: "600"
name: Tiny
levels:
  - { level: 2, required_exp: "1,500", cost: 7 }
  - { level: 1, required_exp: 1000, cost: 5 }
  - { level: 3, required_exp: 2000, cost: "1,009" }
`

func TestParseYAMLAcceptsGroupedNumbers(t *testing.T) {
	yt, err := ParseYAML([]byte(smallTable))
	require.NoError(t, err)

	assert.Equal(t, "600", yt.Tier)
	require.Len(t, yt.Levels, 3)
	assert.Equal(t, Amount(1500), yt.Levels[0].RequiredExp)
	assert.Equal(t, Amount(1009), yt.Levels[2].Cost)
}

func TestParseYAMLRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing tier", "levels:\n  - { level: 1, required_exp: 10, cost: 1 }\n"},
		{"no levels", "tier: \"600\"\n"},
		{"zero exp", "tier: \"600\"\nlevels:\n  - { level: 1, required_exp: 0, cost: 1 }\n"},
		{"negative cost", "tier: \"600\"\nlevels:\n  - { level: 1, required_exp: 5, cost: -1 }\n"},
		{"gap", "tier: \"600\"\nlevels:\n  - { level: 1, required_exp: 5, cost: 1 }\n  - { level: 3, required_exp: 5, cost: 1 }\n"},
		{"duplicate", "tier: \"600\"\nlevels:\n  - { level: 1, required_exp: 5, cost: 1 }\n  - { level: 1, required_exp: 5, cost: 1 }\n"},
		{"garbage number", "tier: \"600\"\nlevels:\n  - { level: 1, required_exp: lots, cost: 1 }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDefaultsCoverAllTiers(t *testing.T) {
	book, sources, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, leveling.AllTiers, book.Tiers())
	assert.Len(t, sources, len(leveling.AllTiers))

	common, err := book.Get(leveling.Tier600)
	require.NoError(t, err)
	mythical, err := book.Get(leveling.Tier1320)
	require.NoError(t, err)

	assert.Equal(t, common.CapLevel(), mythical.CapLevel())

	multipliers := make([]float64, len(sources))
	for i, src := range sources {
		multipliers[i] = src.Multiplier
	}
	assert.Equal(t, []float64{1.0, 1.5, 1.8, 2.2}, multipliers)
	assert.Greater(t, mythical.RequiredExp(10), common.RequiredExp(10))
}

func TestLoadOverridesTier(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.yaml"), []byte(smallTable), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("tier: [\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	book, sources, err := Load(dir)
	require.NoError(t, err)

	tbl, err := book.Get(leveling.Tier600)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.CapLevel())

	// Other tiers still come from the embedded defaults
	_, err = book.Get(leveling.Tier900)
	require.NoError(t, err)

	require.Len(t, sources, len(leveling.AllTiers))
	assert.Equal(t, filepath.Join(dir, "common.yaml"), sources[0].FilePath)
	assert.Equal(t, "Tiny", sources[0].Name)
	assert.Zero(t, sources[0].Multiplier)
}

func TestLoadMissingDir(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestBookUnknownTier(t *testing.T) {
	book, _, err := Defaults()
	require.NoError(t, err)

	_, err = book.Get("9999")
	assert.ErrorIs(t, err, leveling.ErrUnknownTier)
}
