package analytics

// Tier buckets a streak length for display intensity.
type Tier int

const (
	TierNone    Tier = iota // no streak
	TierWarm                // 1-2 days
	TierHot                 // 3-6 days
	TierBlazing             // 7-13 days
	TierInferno             // 14+ days
)

// TierFor maps a streak length to its Tier.
func TierFor(streak int) Tier {
	switch {
	case streak >= 14:
		return TierInferno
	case streak >= 7:
		return TierBlazing
	case streak >= 3:
		return TierHot
	case streak > 0:
		return TierWarm
	}
	return TierNone
}

func (t Tier) String() string {
	switch t {
	case TierWarm:
		return "warm"
	case TierHot:
		return "hot"
	case TierBlazing:
		return "blazing"
	case TierInferno:
		return "inferno"
	}
	return "none"
}
