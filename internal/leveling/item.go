package leveling

// Nature is the EXP gain modifier of a creature's nature.
type Nature string

const (
	NatureNone      Nature = "none"
	NatureBoost     Nature = "boost"     // +18%
	NatureReduction Nature = "reduction" // -18%
)

// AllNatures lists natures in display order.
var AllNatures = []Nature{NatureNone, NatureBoost, NatureReduction}

// BaseExp returns the EXP granted by one candy for the nature.
func (n Nature) BaseExp() int {
	switch n {
	case NatureBoost:
		return 30
	case NatureReduction:
		return 21
	default:
		return 25
	}
}

// Title returns a display label for the nature.
func (n Nature) Title() string {
	switch n {
	case NatureBoost:
		return "Boost (+18%)"
	case NatureReduction:
		return "Reduction (-18%)"
	default:
		return "None"
	}
}

// Valid reports whether n is a known nature.
func (n Nature) Valid() bool {
	return n == NatureNone || n == NatureBoost || n == NatureReduction
}

// ItemExp returns the EXP per candy for a nature under an EXP boost rate.
func ItemExp(n Nature, boostRate int) int {
	return n.BaseExp() * boostRate
}

// ShardCost scales a simulated Dream Shards total by the depletion rate.
// The rate applies to the total, not to each candy, so fractional rates round
// only once.
func ShardCost(totalCost int, depletionRate float64) float64 {
	return float64(totalCost) * depletionRate
}
