package gacha

import "github.com/xtding233/gacha-forecast/internal/ledger"

// pityTrack binds banner rules to the ledger counters and credit that banner uses.
// Character and weapon banners share the same attempt logic through it.
type pityTrack struct {
	Rules Rules

	spendCredit func(*ledger.Ledger) bool
	pity        func(*ledger.Ledger) int
	sinceBonus  func(*ledger.Ledger) int
	increment   func(*ledger.Ledger)
	resetPity   func(*ledger.Ledger)
	resetBonus  func(*ledger.Ledger)
}

func characterTrack(r Rules) pityTrack {
	return pityTrack{
		Rules:       r,
		spendCredit: (*ledger.Ledger).SpendTicket,
		pity:        func(l *ledger.Ledger) int { return l.CharacterPity },
		sinceBonus:  func(l *ledger.Ledger) int { return l.CharacterSinceBonus },
		increment:   (*ledger.Ledger).IncrementCharacterPity,
		resetPity:   (*ledger.Ledger).ResetCharacterPity,
		resetBonus:  (*ledger.Ledger).ResetCharacterBonusCounter,
	}
}

func weaponTrack(r Rules) pityTrack {
	return pityTrack{
		Rules:       r,
		spendCredit: (*ledger.Ledger).SpendCoin,
		pity:        func(l *ledger.Ledger) int { return l.WeaponPity },
		sinceBonus:  func(l *ledger.Ledger) int { return l.WeaponSinceBonus },
		increment:   (*ledger.Ledger).IncrementWeaponPity,
		resetPity:   (*ledger.Ledger).ResetWeaponPity,
		resetBonus:  (*ledger.Ledger).ResetWeaponBonusCounter,
	}
}

// pay covers one pull: a credit first, otherwise jewels, converting bonus gems
// when the jewels alone fall short.
func (t pityTrack) pay(l *ledger.Ledger) bool {
	if t.spendCredit(l) {
		return true
	}
	if l.Jewels < t.Rules.Cost && l.BonusGems >= ledger.GemBatch {
		l.ConvertBonusGems()
	}
	return l.SpendJewels(t.Rules.Cost)
}

// roll advances the counters by one pull and decides whether it hits.
// A hit resets the main pity counter.
func (t pityTrack) roll(l *ledger.Ledger, luck float64, rng RandomSource) (bool, error) {
	t.increment(l)

	// secondary-rarity lane; it never fires on the hard pity pull itself
	if t.sinceBonus(l) >= BonusInterval && t.pity(l) < t.Rules.Ceiling {
		t.resetBonus(l)
	}

	hit, err := Draw(t.Rules.Rate*luck, rng)
	if err != nil {
		return false, err
	}
	if hit || t.pity(l) >= t.Rules.Ceiling {
		t.resetPity(l)
		return true, nil
	}
	return false, nil
}
