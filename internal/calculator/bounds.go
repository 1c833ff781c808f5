package calculator

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vovakirdan/levelup/internal/leveling"
)

// DefaultBoundCacheSize is the number of feasibility bounds kept in memory.
const DefaultBoundCacheSize = 512

type boundKey struct {
	table     *leveling.Table
	start     int
	remaining int
	itemExp   int
}

// BoundCache memoises leveling.MaxFeasibleItems per table and starting state.
// Safe for concurrent use.
type BoundCache struct {
	lru *lru.Cache[boundKey, int]
}

// NewBoundCache creates a cache holding up to size bounds.
func NewBoundCache(size int) (*BoundCache, error) {
	c, err := lru.New[boundKey, int](size)
	if err != nil {
		return nil, fmt.Errorf("calculator: bound cache: %w", err)
	}
	return &BoundCache{lru: c}, nil
}

// Get returns the feasibility bound, computing it on a miss.
func (b *BoundCache) Get(t *leveling.Table, start, remaining, itemExp int) int {
	key := boundKey{table: t, start: start, remaining: remaining, itemExp: itemExp}
	if n, ok := b.lru.Get(key); ok {
		return n
	}

	n := leveling.MaxFeasibleItems(t, start, remaining, itemExp)
	b.lru.Add(key, n)
	return n
}

// Len returns the number of cached bounds.
func (b *BoundCache) Len() int {
	return b.lru.Len()
}
