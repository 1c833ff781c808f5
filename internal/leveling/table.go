// Package leveling implements the candy leveling math: EXP tables per growth
// tier, the progression simulator, the feasibility bound and the target solver.
// It has no dependencies on the UI, storage or loaders.
package leveling

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTier is returned when a tier has no table in a Book.
var ErrUnknownTier = errors.New("leveling: unknown tier")

// Entry describes a single level of an EXP table.
type Entry struct {
	RequiredExp int // EXP needed to leave this level
	Cost        int // Dream Shards per candy consumed at this level
}

// Table is an immutable EXP table for one tier.
// Levels are contiguous starting at 1; the highest level is the cap.
type Table struct {
	entries []Entry // entries[level-1]
}

// NewTable builds a table from entries ordered by level, starting at level 1.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("leveling: table has no levels")
	}

	for i, e := range entries {
		if e.RequiredExp <= 0 {
			return nil, fmt.Errorf("leveling: level %d: required exp must be positive, got %d", i+1, e.RequiredExp)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("leveling: level %d: cost must not be negative, got %d", i+1, e.Cost)
		}
	}

	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Table{entries: cp}, nil
}

// CapLevel returns the highest level in the table.
func (t *Table) CapLevel() int {
	return len(t.entries)
}

// Has reports whether level is present in the table.
func (t *Table) Has(level int) bool {
	return level >= 1 && level <= len(t.entries)
}

// Entry returns the entry for level, or false if the level is out of range.
func (t *Table) Entry(level int) (Entry, bool) {
	if !t.Has(level) {
		return Entry{}, false
	}
	return t.entries[level-1], true
}

// RequiredExp returns the EXP needed to leave level, or 0 if it is absent.
func (t *Table) RequiredExp(level int) int {
	e, ok := t.Entry(level)
	if !ok {
		return 0
	}
	return e.RequiredExp
}

// carry advances from level using overflow EXP, crossing as many levels as the
// overflow covers. Entering the cap stops the carry with remaining set to 0.
func (t *Table) carry(level, overflow int) (next, remaining int, capped bool) {
	for {
		level++
		if level >= t.CapLevel() {
			return t.CapLevel(), 0, true
		}
		need := t.entries[level-1].RequiredExp
		if overflow < need {
			return level, need - overflow, false
		}
		overflow -= need
	}
}

// Book holds one table per tier.
type Book struct {
	tables map[Tier]*Table
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{tables: make(map[Tier]*Table)}
}

// Add stores or replaces the table for tier.
func (b *Book) Add(tier Tier, t *Table) {
	b.tables[tier] = t
}

// Get returns the table for tier.
func (b *Book) Get(tier Tier) (*Table, error) {
	t, ok := b.tables[tier]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTier, tier)
	}
	return t, nil
}

// Tiers returns the tiers present in the book, ordered by growth rate.
func (b *Book) Tiers() []Tier {
	tiers := make([]Tier, 0, len(b.tables))
	for tier := range b.tables {
		tiers = append(tiers, tier)
	}

	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Less(tiers[j])
	})

	return tiers
}
