package gacha

import "fmt"

// Mode selects how lucky the simulated player is.
type Mode string

const (
	ModeAverage      Mode = "average"
	ModeBelowAverage Mode = "below_average"
	ModeWorst        Mode = "worst" // always hard pity, always lose the 50/50
)

// Luck returns the multiplier applied to every base rate.
func (m Mode) Luck() float64 {
	switch m {
	case ModeWorst:
		return 0.0
	case ModeBelowAverage:
		return 0.6
	default:
		return 1.0
	}
}

func (m Mode) Valid() bool {
	switch m {
	case ModeAverage, ModeBelowAverage, ModeWorst:
		return true
	}
	return false
}

// BannerKind selects the character banner rules.
type BannerKind string

const (
	// BannerTargeted always yields the featured character on a hit.
	BannerTargeted BannerKind = "targeted"
	// BannerChance has a 50/50 on a hit; a loss guarantees the next hit.
	BannerChance BannerKind = "chance"
)

func (b BannerKind) Valid() bool {
	return b == BannerTargeted || b == BannerChance
}

// Rules are the published rates of one banner.
type Rules struct {
	Rate    float64 // base high-rarity rate per pull
	Ceiling int     // hard pity: the pull that reaches Ceiling always hits
	Cost    int     // jewels per pull when no credit is held
}

// Published rates.
var (
	TargetedCharacter = Rules{Rate: 0.004, Ceiling: 110, Cost: 150}
	ChanceCharacter   = Rules{Rate: 0.008, Ceiling: 80, Cost: 150}
	Weapon            = Rules{Rate: 0.008, Ceiling: 70, Cost: 100}
)

const (
	// BonusInterval pulls without a reset of the since-bonus counter award bonus gems.
	BonusInterval = 10
	// CoinFlip is the chance of winning the 50/50.
	CoinFlip = 0.5
)

// CharacterRules returns the character banner rules for kind.
func CharacterRules(kind BannerKind) Rules {
	if kind == BannerChance {
		return ChanceCharacter
	}
	return TargetedCharacter
}

// Validate checks the rules against the luck modifier they will be used with.
func (r Rules) Validate(luck float64) error {
	if r.Ceiling <= 0 {
		return fmt.Errorf("ceiling must be >= 1, got %d", r.Ceiling)
	}
	if r.Cost <= 0 {
		return fmt.Errorf("cost must be >= 1, got %d", r.Cost)
	}
	return validateProb(r.Rate * luck)
}
