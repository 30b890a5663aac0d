package gacha

import (
	"fmt"

	"github.com/xtding233/gacha-forecast/internal/ledger"
)

// Puller runs the pull state machines for one trial worker.
// It owns no player state: every call mutates the ledger it is given.
type Puller struct {
	Banner BannerKind
	Mode   Mode

	rng       RandomSource
	luck      float64
	character pityTrack
	weapon    pityTrack
	pulls     int
}

// NewPuller validates the rules for banner and mode against the luck modifier.
// A nil rng uses NewEntropyRNG.
func NewPuller(banner BannerKind, mode Mode, rng RandomSource) (*Puller, error) {
	if rng == nil {
		rng = NewEntropyRNG()
	}
	p := &Puller{
		Banner:    banner,
		Mode:      mode,
		rng:       rng,
		luck:      mode.Luck(),
		character: characterTrack(CharacterRules(banner)),
		weapon:    weaponTrack(Weapon),
	}
	if err := p.character.Rules.Validate(p.luck); err != nil {
		return nil, fmt.Errorf("character rules: %w", err)
	}
	if err := p.weapon.Rules.Validate(p.luck); err != nil {
		return nil, fmt.Errorf("weapon rules: %w", err)
	}
	return p, nil
}

// PullCharacter pulls until the featured character is obtained or the ledger
// cannot pay for the next pull.
func (p *Puller) PullCharacter(l *ledger.Ledger) (bool, error) {
	if p.Banner == BannerChance {
		return p.chance(l, p.character)
	}
	return p.targeted(l, p.character)
}

// PullWeapon pulls until the featured weapon is obtained or the ledger runs dry.
// The weapon banner always follows the 50/50 rules.
func (p *Puller) PullWeapon(l *ledger.Ledger) (bool, error) {
	return p.chance(l, p.weapon)
}

// Pulls is the number of paid pulls made so far.
func (p *Puller) Pulls() int { return p.pulls }

// ResetPulls zeroes the pull counter between trials.
func (p *Puller) ResetPulls() { p.pulls = 0 }

// targeted: every hit is the featured reward.
func (p *Puller) targeted(l *ledger.Ledger, t pityTrack) (bool, error) {
	for {
		if !t.pay(l) {
			return false, nil
		}
		p.pulls++
		hit, err := t.roll(l, p.luck, p.rng)
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
}

// chance: a hit is featured only if the previous hit lost its coin flip or this
// one wins it. In worst mode every coin flip is lost.
func (p *Puller) chance(l *ledger.Ledger, t pityTrack) (bool, error) {
	guaranteed := false
	for {
		if !t.pay(l) {
			return false, nil
		}
		p.pulls++
		hit, err := t.roll(l, p.luck, p.rng)
		if err != nil {
			return false, err
		}
		if !hit {
			continue
		}
		if guaranteed {
			return true, nil
		}
		won, err := Draw(CoinFlip, p.rng)
		if err != nil {
			return false, err
		}
		if won && p.Mode != ModeWorst {
			return true, nil
		}
		guaranteed = true
	}
}
