package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, s Snapshot) *Ledger {
	t.Helper()
	l, err := New(s)
	require.NoError(t, err)
	return l
}

func TestNew(t *testing.T) {
	l := newTestLedger(t, Snapshot{Jewels: 500, Tickets: 2, Coins: 3, CharacterPity: 40})
	assert.Equal(t, 500, l.Jewels)
	assert.Equal(t, 2, l.Tickets)
	assert.Equal(t, 3, l.Coins)
	assert.Equal(t, 40, l.CharacterPity)
	assert.Equal(t, 0, l.BonusGems)
	assert.Equal(t, DailyJewels, l.DailyJewels)

	sub := newTestLedger(t, Snapshot{Subscription: true, SubscriptionDays: 12})
	assert.Equal(t, SubscriptionDailyJewels, sub.DailyJewels)
	assert.Equal(t, 12, sub.SubscriptionDays)
}

func TestNew_RejectsNegative(t *testing.T) {
	_, err := New(Snapshot{Jewels: -1, WeaponPity: -3})
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "jewels must be >= 0")
	assert.Contains(t, err.Error(), "weapon_pity must be >= 0")
}

func TestSpendJewels(t *testing.T) {
	tests := []struct {
		name      string
		balance   int
		amount    int
		wantOK    bool
		wantAfter int
	}{
		{name: "exact balance", balance: 150, amount: 150, wantOK: true, wantAfter: 0},
		{name: "surplus", balance: 400, amount: 150, wantOK: true, wantAfter: 250},
		{name: "short by one", balance: 149, amount: 150, wantOK: false, wantAfter: 149},
		{name: "empty", balance: 0, amount: 100, wantOK: false, wantAfter: 0},
		{name: "negative amount", balance: 10, amount: -5, wantOK: false, wantAfter: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t, Snapshot{Jewels: tt.balance})
			before := *l
			ok := l.SpendJewels(tt.amount)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAfter, l.Jewels)
			assert.GreaterOrEqual(t, l.Jewels, 0)
			if !ok {
				assert.Equal(t, before, *l, "failed spend must not change state")
			}
		})
	}
}

func TestSpendCredits(t *testing.T) {
	l := newTestLedger(t, Snapshot{Tickets: 1, Coins: 1})

	assert.True(t, l.SpendTicket())
	assert.False(t, l.SpendTicket())
	assert.Equal(t, 0, l.Tickets)

	assert.True(t, l.SpendCoin())
	assert.False(t, l.SpendCoin())
	assert.Equal(t, 0, l.Coins)
}

func TestConvertBonusGems(t *testing.T) {
	l := newTestLedger(t, Snapshot{Jewels: 5})
	l.AddBonusGems(37)

	assert.Equal(t, 3, l.ConvertBonusGems())
	assert.Equal(t, 305, l.Jewels)
	assert.Equal(t, 7, l.BonusGems)
}

func TestConvertBonusGems_BelowBatchIsNoop(t *testing.T) {
	l := newTestLedger(t, Snapshot{Jewels: 20})
	l.AddBonusGems(GemBatch - 1)
	before := *l

	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, l.ConvertBonusGems())
		assert.Equal(t, before, *l)
	}
}

func TestPityCounters(t *testing.T) {
	l := newTestLedger(t, Snapshot{CharacterPity: 3})

	l.IncrementCharacterPity()
	l.IncrementWeaponPity()
	l.IncrementWeaponPity()
	assert.Equal(t, 4, l.CharacterPity)
	assert.Equal(t, 1, l.CharacterSinceBonus)
	assert.Equal(t, 2, l.WeaponPity)
	assert.Equal(t, 2, l.WeaponSinceBonus)

	l.ResetCharacterPity()
	l.ResetWeaponPity()
	assert.Equal(t, 0, l.CharacterPity)
	assert.Equal(t, 0, l.WeaponPity)
	assert.Equal(t, 1, l.CharacterSinceBonus, "main reset keeps since-bonus")
	assert.Equal(t, 2, l.WeaponSinceBonus)

	l.ResetCharacterBonusCounter()
	l.ResetWeaponBonusCounter()
	assert.Equal(t, 0, l.CharacterSinceBonus)
	assert.Equal(t, 0, l.WeaponSinceBonus)
	assert.Equal(t, 2*BonusGemGrant, l.BonusGems)
}

func TestAddIgnoresNegative(t *testing.T) {
	l := newTestLedger(t, Snapshot{Jewels: 10, Tickets: 1, Coins: 1})
	l.AddJewels(-50)
	l.AddTickets(-2)
	l.AddCoins(-2)
	l.AddBonusGems(-10)
	assert.Equal(t, 10, l.Jewels)
	assert.Equal(t, 1, l.Tickets)
	assert.Equal(t, 1, l.Coins)
	assert.Equal(t, 0, l.BonusGems)
}

func TestClone_NoAliasing(t *testing.T) {
	orig := newTestLedger(t, Snapshot{
		Jewels: 1000, Tickets: 2, Coins: 3, CharacterPity: 5, WeaponPity: 6,
		Pass: true, PassDays: 10, Subscription: true, SubscriptionDays: 20,
	})
	orig.AddBonusGems(4)
	want := *orig

	c := orig.Clone()
	c.SpendJewels(150)
	c.SpendTicket()
	c.SpendCoin()
	c.AddBonusGems(30)
	c.ConvertBonusGems()
	c.IncrementCharacterPity()
	c.IncrementWeaponPity()
	c.ResetCharacterBonusCounter()
	c.PassDays = 0
	c.SubscriptionDays = 0
	c.Pass = false
	c.Subscription = false
	c.DailyJewels = 0

	assert.Equal(t, want, *orig)
	assert.NotSame(t, orig, c)
}
