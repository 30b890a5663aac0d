package forecast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtding233/gacha-forecast/internal/gacha"
	"github.com/xtding233/gacha-forecast/internal/ledger"
)

// MaxAwareness and MaxRefinement bound the follow-up pulls a directive may ask for.
const (
	MaxAwareness  = 6
	MaxRefinement = 6
)

var ErrInvalidRequest = errors.New("invalid forecast request")

// Size classifies a patch; it decides the flat jewel bonus.
type Size string

const (
	SizeSmall Size = "small"
	SizeLarge Size = "large"
)

// Directive is what the player wants from one patch.
type Directive struct {
	WantCharacter bool   `json:"want_character" yaml:"want_character"`
	Character     string `json:"character" yaml:"character"` // featured character id
	Awareness     int    `json:"awareness" yaml:"awareness"` // duplicates wanted on top of the base pull
	WantWeapon    bool   `json:"want_weapon" yaml:"want_weapon"`
	Refinement    int    `json:"refinement" yaml:"refinement"` // weapon copies wanted on top of the base pull
}

// Patch is one catalog entry. Patches are shared read-only by every trial.
type Patch struct {
	ID        string    `json:"id" yaml:"id"`
	Size      Size      `json:"size" yaml:"size"`
	Directive Directive `json:"directive" yaml:"directive"`
}

// Request is everything one forecast run needs. Patches are in timeline order.
type Request struct {
	Mode   gacha.Mode       `json:"mode"`
	Banner gacha.BannerKind `json:"banner"`

	Jewels        int `json:"jewels"`
	Tickets       int `json:"tickets"`
	Coins         int `json:"coins"`
	CharacterPity int `json:"character_pity"`
	WeaponPity    int `json:"weapon_pity"`

	Pass             bool `json:"pass"`
	PassDays         int  `json:"pass_days"`
	Subscription     bool `json:"subscription"`
	SubscriptionDays int  `json:"subscription_days"`

	Patches []Patch `json:"patches"`
}

// Snapshot extracts the starting ledger state.
func (r Request) Snapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Jewels:           r.Jewels,
		Tickets:          r.Tickets,
		Coins:            r.Coins,
		CharacterPity:    r.CharacterPity,
		WeaponPity:       r.WeaponPity,
		Pass:             r.Pass,
		PassDays:         r.PassDays,
		Subscription:     r.Subscription,
		SubscriptionDays: r.SubscriptionDays,
	}
}

// Validate checks the request and reports every problem at once.
func (r Request) Validate() error {
	var errs []string

	if !r.Mode.Valid() {
		errs = append(errs, fmt.Sprintf("mode %q must be one of: average, below_average, worst", r.Mode))
	}
	if !r.Banner.Valid() {
		errs = append(errs, fmt.Sprintf("banner %q must be one of: targeted, chance", r.Banner))
	}

	for _, f := range []struct {
		name string
		v    int
	}{
		{"jewels", r.Jewels},
		{"tickets", r.Tickets},
		{"coins", r.Coins},
		{"pass_days", r.PassDays},
		{"subscription_days", r.SubscriptionDays},
	} {
		if f.v < 0 {
			errs = append(errs, f.name+" must be >= 0")
		}
	}

	if c := gacha.CharacterRules(r.Banner).Ceiling; r.CharacterPity < 0 || r.CharacterPity >= c {
		errs = append(errs, fmt.Sprintf("character_pity must satisfy 0 <= pity < %d", c))
	}
	if c := gacha.Weapon.Ceiling; r.WeaponPity < 0 || r.WeaponPity >= c {
		errs = append(errs, fmt.Sprintf("weapon_pity must satisfy 0 <= pity < %d", c))
	}

	seen := make(map[string]bool, len(r.Patches))
	for i, p := range r.Patches {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Sprintf("patches[%d].id is required", i))
		case seen[p.ID]:
			errs = append(errs, fmt.Sprintf("patches[%d].id %q is duplicated", i, p.ID))
		}
		seen[p.ID] = true

		if p.Size != SizeSmall && p.Size != SizeLarge {
			errs = append(errs, fmt.Sprintf("patches[%d].size must be small or large", i))
		}
		d := p.Directive
		if d.Awareness < 0 || d.Awareness > MaxAwareness {
			errs = append(errs, fmt.Sprintf("patches[%d].awareness must be in [0,%d]", i, MaxAwareness))
		}
		if d.Refinement < 0 || d.Refinement > MaxRefinement {
			errs = append(errs, fmt.Sprintf("patches[%d].refinement must be in [0,%d]", i, MaxRefinement))
		}
		if d.Awareness > 0 && !d.WantCharacter {
			errs = append(errs, fmt.Sprintf("patches[%d].awareness requires want_character", i))
		}
		if d.Refinement > 0 && !d.WantWeapon {
			errs = append(errs, fmt.Sprintf("patches[%d].refinement requires want_weapon", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(errs, "; "))
	}
	return nil
}
