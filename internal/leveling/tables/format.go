package tables

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// YAMLTable represents the YAML structure of a table file.
type YAMLTable struct {
	Tier       string    `yaml:"tier" validate:"required"`
	Name       string    `yaml:"name"`
	Multiplier float64   `yaml:"multiplier" validate:"gte=0"`
	Levels     []YAMLRow `yaml:"levels" validate:"required,min=1,dive"`
}

// YAMLRow is one level of a table file.
type YAMLRow struct {
	Level       int    `yaml:"level" validate:"gte=1"`
	RequiredExp Amount `yaml:"required_exp" validate:"gt=0"`
	Cost        Amount `yaml:"cost" validate:"gte=0"`
}

// Amount is an integer that may be written with thousands separators ("1,000").
type Amount int

// UnmarshalYAML accepts both plain integers and comma-grouped strings.
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}

	raw := strings.ReplaceAll(strings.TrimSpace(value.Value), ",", "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q", value.Line, value.Value)
	}

	*a = Amount(n)
	return nil
}

var validate = validator.New()

// ParseYAML parses and validates a table file.
func ParseYAML(data []byte) (YAMLTable, error) {
	var yt YAMLTable
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return YAMLTable{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if err := validate.Struct(yt); err != nil {
		return YAMLTable{}, fmt.Errorf("invalid table: %w", err)
	}

	// Rows may be listed in any order but must cover 1..N without gaps
	seen := make(map[int]bool, len(yt.Levels))
	for _, row := range yt.Levels {
		if seen[row.Level] {
			return YAMLTable{}, fmt.Errorf("invalid table: level %d listed twice", row.Level)
		}
		seen[row.Level] = true
	}
	for lvl := 1; lvl <= len(yt.Levels); lvl++ {
		if !seen[lvl] {
			return YAMLTable{}, fmt.Errorf("invalid table: level %d missing", lvl)
		}
	}

	return yt, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
