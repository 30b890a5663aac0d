package ledger

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DailyJewels is the base daily login income.
	DailyJewels = 60
	// SubscriptionDailyJewels replaces DailyJewels while a subscription is held.
	SubscriptionDailyJewels = 160

	// GemBatch bonus gems convert into GemBatchJewels jewels.
	GemBatch       = 10
	GemBatchJewels = 100

	// BonusGemGrant is awarded every time a since-bonus counter is reset.
	BonusGemGrant = 10
)

var ErrInvalidSnapshot = errors.New("invalid ledger snapshot")

// Snapshot is the player's starting state as entered by the user.
type Snapshot struct {
	Jewels           int
	Tickets          int
	Coins            int
	CharacterPity    int
	WeaponPity       int
	Pass             bool
	PassDays         int
	Subscription     bool
	SubscriptionDays int
}

// Ledger holds one trial's resources and pity counters.
// It is owned by exactly one goroutine; use Clone to hand a copy elsewhere.
type Ledger struct {
	// Currency
	Jewels    int
	Tickets   int // pre-paid character pulls
	Coins     int // pre-paid weapon pulls
	BonusGems int

	// Pity counters
	CharacterPity       int
	WeaponPity          int
	CharacterSinceBonus int
	WeaponSinceBonus    int

	// Pass / subscription cycles
	Pass             bool
	PassDays         int
	Subscription     bool
	SubscriptionDays int
	DailyJewels      int
}

// New builds a ledger from a snapshot. Negative values are rejected.
func New(s Snapshot) (*Ledger, error) {
	var errs []string
	check := func(name string, v int) {
		if v < 0 {
			errs = append(errs, name+" must be >= 0")
		}
	}
	check("jewels", s.Jewels)
	check("tickets", s.Tickets)
	check("coins", s.Coins)
	check("character_pity", s.CharacterPity)
	check("weapon_pity", s.WeaponPity)
	check("pass_days", s.PassDays)
	check("subscription_days", s.SubscriptionDays)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(errs, "; "))
	}

	daily := DailyJewels
	if s.Subscription {
		daily = SubscriptionDailyJewels
	}
	return &Ledger{
		Jewels:           s.Jewels,
		Tickets:          s.Tickets,
		Coins:            s.Coins,
		CharacterPity:    s.CharacterPity,
		WeaponPity:       s.WeaponPity,
		Pass:             s.Pass,
		PassDays:         s.PassDays,
		Subscription:     s.Subscription,
		SubscriptionDays: s.SubscriptionDays,
		DailyJewels:      daily,
	}, nil
}

func (l *Ledger) AddJewels(n int) {
	if n > 0 {
		l.Jewels += n
	}
}

func (l *Ledger) AddTickets(n int) {
	if n > 0 {
		l.Tickets += n
	}
}

func (l *Ledger) AddCoins(n int) {
	if n > 0 {
		l.Coins += n
	}
}

func (l *Ledger) AddBonusGems(n int) {
	if n > 0 {
		l.BonusGems += n
	}
}

// SpendJewels deducts n jewels. It reports false and leaves the balance
// untouched when fewer than n are held.
func (l *Ledger) SpendJewels(n int) bool {
	if n < 0 || l.Jewels < n {
		return false
	}
	l.Jewels -= n
	return true
}

func (l *Ledger) SpendTicket() bool {
	if l.Tickets <= 0 {
		return false
	}
	l.Tickets--
	return true
}

func (l *Ledger) SpendCoin() bool {
	if l.Coins <= 0 {
		return false
	}
	l.Coins--
	return true
}

// ConvertBonusGems turns every whole batch of bonus gems into jewels and
// returns the number of batches converted. A partial batch is kept.
func (l *Ledger) ConvertBonusGems() int {
	batches := l.BonusGems / GemBatch
	if batches == 0 {
		return 0
	}
	l.BonusGems -= batches * GemBatch
	l.Jewels += batches * GemBatchJewels
	return batches
}

func (l *Ledger) IncrementCharacterPity() {
	l.CharacterPity++
	l.CharacterSinceBonus++
}

func (l *Ledger) IncrementWeaponPity() {
	l.WeaponPity++
	l.WeaponSinceBonus++
}

func (l *Ledger) ResetCharacterPity() { l.CharacterPity = 0 }

func (l *Ledger) ResetWeaponPity() { l.WeaponPity = 0 }

// ResetCharacterBonusCounter clears the since-bonus counter and grants the bonus gems.
func (l *Ledger) ResetCharacterBonusCounter() {
	l.CharacterSinceBonus = 0
	l.AddBonusGems(BonusGemGrant)
}

// ResetWeaponBonusCounter clears the since-bonus counter and grants the bonus gems.
func (l *Ledger) ResetWeaponBonusCounter() {
	l.WeaponSinceBonus = 0
	l.AddBonusGems(BonusGemGrant)
}

// Clone returns an independent copy. Ledger holds only value fields.
func (l *Ledger) Clone() *Ledger {
	c := *l
	return &c
}
