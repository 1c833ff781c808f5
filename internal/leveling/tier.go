package leveling

import "strconv"

// Tier selects the EXP table for a species' growth rate.
// The value is the tier's base EXP figure, as used by the game data.
type Tier string

const (
	Tier600  Tier = "600"  // Common
	Tier900  Tier = "900"  // Pseudo-legendary, x1.5
	Tier1080 Tier = "1080" // Legendary, x1.8
	Tier1320 Tier = "1320" // Mythical, x2.2
)

// AllTiers lists the built-in tiers in growth order.
var AllTiers = []Tier{Tier600, Tier900, Tier1080, Tier1320}

// Title returns a display label for the tier.
func (t Tier) Title() string {
	switch t {
	case Tier600:
		return "Common"
	case Tier900:
		return "Pseudo-legendary (x1.5)"
	case Tier1080:
		return "Legendary (x1.8)"
	case Tier1320:
		return "Mythical (x2.2)"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the built-in tiers.
func (t Tier) Valid() bool {
	for _, known := range AllTiers {
		if t == known {
			return true
		}
	}
	return false
}

// Less orders tiers by growth rate; non-numeric tiers sort last.
func (t Tier) Less(o Tier) bool {
	return t.rank() < o.rank()
}

func (t Tier) rank() int {
	n, err := strconv.Atoi(string(t))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
