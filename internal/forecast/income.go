package forecast

import "github.com/xtding233/gacha-forecast/internal/ledger"

// Income constants.
const (
	PatchDurationDays = 14

	SmallPatchJewels = 6000
	LargePatchJewels = 10000

	SubscriptionBonus     = 300 // granted when a subscription cycle ends
	SubscriptionCycleDays = 30

	PassJewels    = 650
	PassTickets   = 3
	PassCoins     = 7
	PassCycleDays = 45
)

// patchBonus returns the flat jewels granted when a patch goes live.
func patchBonus(s Size) int {
	if s == SizeLarge {
		return LargePatchJewels
	}
	return SmallPatchJewels
}

// Accrue adds the income earned between the from and to patches.
// Unknown ids, equal ids and spans running backwards are no-ops.
func Accrue(l *ledger.Ledger, from, to string, patches []Patch) {
	if from == to {
		return
	}
	fromIdx, toIdx := -1, -1
	for i, p := range patches {
		switch p.ID {
		case from:
			fromIdx = i
		case to:
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return
	}
	accrueSpan(l, patches, fromIdx, toIdx)
}

// accrueSpan grants income for patches (fromIdx, toIdx].
func accrueSpan(l *ledger.Ledger, patches []Patch, fromIdx, toIdx int) {
	if toIdx <= fromIdx {
		return
	}
	for i := fromIdx + 1; i <= toIdx; i++ {
		l.AddJewels(patchBonus(patches[i].Size))
	}

	totalDays := (toIdx - fromIdx) * PatchDurationDays
	accrueDaily(l, totalDays)
	if l.Pass {
		accruePass(l, totalDays)
	}
}

// accrueDaily pays the daily login jewels, renewing the subscription as its
// cycles run out.
func accrueDaily(l *ledger.Ledger, days int) {
	if !l.Subscription {
		l.AddJewels(days * ledger.DailyJewels)
		return
	}
	for days > 0 {
		n := min(days, l.SubscriptionDays)
		l.AddJewels(n * l.DailyJewels)
		l.SubscriptionDays -= n
		days -= n

		if l.SubscriptionDays == 0 {
			l.AddJewels(SubscriptionBonus)
			l.SubscriptionDays = SubscriptionCycleDays
		}
	}
}

// accruePass grants the pass bundle every time a pass cycle completes.
func accruePass(l *ledger.Ledger, days int) {
	for days > 0 {
		n := min(days, l.PassDays)
		l.PassDays -= n
		days -= n

		if l.PassDays == 0 {
			l.AddJewels(PassJewels)
			l.AddTickets(PassTickets)
			l.AddCoins(PassCoins)
			l.PassDays = PassCycleDays
		}
	}
}
