package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleCalculation(tier string, candies int) Calculation {
	return Calculation{
		Tier:                tier,
		Nature:              "none",
		StartLevel:          1,
		InitialRemainingExp: 54,
		BoostRate:           1,
		DepletionRate:       1.5,
		TargetLevel:         10,
		Candies:             candies,
		FinalLevel:          10,
		RemainingExp:        345,
		Shards:              1234.5,
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, c := range []Calculation{
		sampleCalculation("600", 10),
		sampleCalculation("900", 20),
		sampleCalculation("600", 30),
	} {
		_, err := store.SaveCalculation(c)
		require.NoError(t, err)
	}

	all, err := store.RecentCalculations("", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Newest first
	assert.Equal(t, 30, all[0].Candies)
	assert.Equal(t, 20, all[1].Candies)
	assert.Equal(t, 10, all[2].Candies)
	assert.False(t, all[0].CreatedAt.IsZero())

	common, err := store.RecentCalculations("600", 10)
	require.NoError(t, err)
	assert.Len(t, common, 2)

	limited, err := store.RecentCalculations("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStoreRoundTripFields(t *testing.T) {
	store := openTestStore(t)

	want := sampleCalculation("1320", 77)
	want.Note = "for the weekend event"
	id, err := store.SaveCalculation(want)
	require.NoError(t, err)

	got, err := store.CalculationByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)

	want.ID = id
	want.CreatedAt = got.CreatedAt
	assert.Equal(t, want, *got)

	missing, err := store.CalculationByID(id + 100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreSetNote(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveCalculation(sampleCalculation("900", 7))
	require.NoError(t, err)

	require.NoError(t, store.SetNote(id, "for the event"))
	c, err := store.CalculationByID(id)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "for the event", c.Note)

	err = store.SetNote(id+100, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.levelup/history.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".levelup", "history.db"))
	assert.NoError(t, err)
}

func TestStoreDeleteAndClear(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveCalculation(sampleCalculation("600", 1))
	require.NoError(t, err)
	_, err = store.SaveCalculation(sampleCalculation("600", 2))
	require.NoError(t, err)

	require.NoError(t, store.DeleteCalculation(id))
	rest, err := store.RecentCalculations("", 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, 2, rest[0].Candies)

	require.NoError(t, store.ClearHistory())
	rest, err = store.RecentCalculations("", 10)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	for _, c := range []Calculation{
		sampleCalculation("600", 10),
		sampleCalculation("600", 15),
		sampleCalculation("900", 5),
	} {
		_, err := store.SaveCalculation(c)
		require.NoError(t, err)
	}

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, 2, stats["600"].Count)
	assert.Equal(t, int64(25), stats["600"].TotalCandies)
	assert.InDelta(t, 2469.0, stats["600"].TotalShards, 1e-6)
	assert.Equal(t, 1, stats["900"].Count)
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveCalculation(sampleCalculation("600", 42))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store2, err := Open(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	all, err := store2.RecentCalculations("", 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 42, all[0].Candies)
}
