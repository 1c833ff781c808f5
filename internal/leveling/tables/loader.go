// Package tables loads EXP tables from YAML files.
// Embedded defaults cover the four built-in tiers; a table directory may
// override any of them or add new tiers.
package tables

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelup/internal/leveling"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Source records where a tier's table came from.
type Source struct {
	Tier       leveling.Tier
	Name       string
	Multiplier float64 // EXP growth relative to the common tier; 0 if unset
	CapLevel   int
	FilePath   string // "embedded:<file>" for built-in tables
}

// Loader reads table files from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new table loader rooted at dir.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll walks the directory and parses every table file.
// Files that fail to parse are skipped with a warning.
func (l *Loader) LoadAll() (map[leveling.Tier]*leveling.Table, []Source, error) {
	found := make(map[leveling.Tier]*leveling.Table)
	var sources []Source

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping table file", "path", path, "error", err)
			return nil
		}

		tier, tbl, src, err := build(data, path)
		if err != nil {
			log.Warn("skipping table file", "path", path, "error", err)
			return nil
		}

		found[tier] = tbl
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	return found, sources, nil
}

// Load returns a book of tables.
// Search order: customDir -> ~/.levelup/tables -> ./tables -> embedded defaults.
// Embedded defaults fill any built-in tier the directory does not provide.
func Load(customDir string) (*leveling.Book, []Source, error) {
	book, sources, err := Defaults()
	if err != nil {
		return nil, nil, err
	}

	dir := customDir
	if dir == "" {
		dir = firstExistingDir(userTablesDir(), "tables")
	} else if _, statErr := os.Stat(dir); statErr != nil {
		return nil, nil, fmt.Errorf("tables: cannot read %s: %w", dir, statErr)
	}
	if dir == "" {
		return book, sources, nil
	}

	found, overrides, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("tables: %w", err)
	}

	for tier, tbl := range found {
		book.Add(tier, tbl)
	}
	return book, mergeSources(sources, overrides), nil
}

// Defaults returns the embedded tables.
func Defaults() (*leveling.Book, []Source, error) {
	book := leveling.NewBook()
	var sources []Source

	entries, err := fs.ReadDir(defaultFS, "defaults")
	if err != nil {
		return nil, nil, fmt.Errorf("tables: reading embedded defaults: %w", err)
	}

	for _, e := range entries {
		data, err := defaultFS.ReadFile("defaults/" + e.Name())
		if err != nil {
			return nil, nil, fmt.Errorf("tables: reading embedded %s: %w", e.Name(), err)
		}

		tier, tbl, src, err := build(data, "embedded:"+e.Name())
		if err != nil {
			return nil, nil, fmt.Errorf("tables: embedded %s: %w", e.Name(), err)
		}

		book.Add(tier, tbl)
		sources = append(sources, src)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Tier.Less(sources[j].Tier)
	})

	return book, sources, nil
}

// build parses a table file and converts it to a leveling table.
func build(data []byte, path string) (leveling.Tier, *leveling.Table, Source, error) {
	yt, err := ParseYAML(data)
	if err != nil {
		return "", nil, Source{}, err
	}

	entries := make([]leveling.Entry, len(yt.Levels))
	for _, row := range yt.Levels {
		entries[row.Level-1] = leveling.Entry{
			RequiredExp: int(row.RequiredExp),
			Cost:        int(row.Cost),
		}
	}

	tbl, err := leveling.NewTable(entries)
	if err != nil {
		return "", nil, Source{}, err
	}

	tier := leveling.Tier(yt.Tier)
	name := yt.Name
	if name == "" {
		name = tier.Title()
	}

	return tier, tbl, Source{
		Tier:       tier,
		Name:       name,
		Multiplier: yt.Multiplier,
		CapLevel:   tbl.CapLevel(),
		FilePath:   path,
	}, nil
}

// mergeSources replaces default sources with overrides for the same tier.
func mergeSources(defaults, overrides []Source) []Source {
	byTier := make(map[leveling.Tier]int, len(defaults))
	merged := append([]Source(nil), defaults...)
	for i, s := range merged {
		byTier[s.Tier] = i
	}

	for _, o := range overrides {
		if i, ok := byTier[o.Tier]; ok {
			merged[i] = o
			continue
		}
		byTier[o.Tier] = len(merged)
		merged = append(merged, o)
	}
	return merged
}

// userTablesDir returns ~/.levelup/tables, or empty if home is unavailable.
func userTablesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".levelup", "tables")
}

func firstExistingDir(dirs ...string) string {
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			return d
		}
	}
	return ""
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
