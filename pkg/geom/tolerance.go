package geom

const (
	// CoarseEpsilon is the slide-unit tolerance for box comparisons.
	CoarseEpsilon = 1e-4

	// FineEpsilon is the tolerance for segment arithmetic and tie-breaking.
	FineEpsilon = 1e-6
)

// Tolerances groups the two epsilons used by classification.
type Tolerances struct {
	Coarse float64 `json:"coarse" toml:"coarse"`
	Fine   float64 `json:"fine" toml:"fine"`
}

// DefaultTolerances holds the standard epsilons.
var DefaultTolerances = Tolerances{Coarse: CoarseEpsilon, Fine: FineEpsilon}

// OrDefault fills unset (zero or negative) fields from DefaultTolerances.
func (t Tolerances) OrDefault() Tolerances {
	if t.Coarse <= 0 {
		t.Coarse = CoarseEpsilon
	}
	if t.Fine <= 0 {
		t.Fine = FineEpsilon
	}
	return t
}

// IsDefault reports whether t matches DefaultTolerances after defaults are applied.
func (t Tolerances) IsDefault() bool {
	return t.OrDefault() == DefaultTolerances
}
