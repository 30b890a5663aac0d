package forecast

import (
	"log/slog"

	"github.com/xtding233/gacha-forecast/internal/gacha"
	"github.com/xtding233/gacha-forecast/internal/ledger"
)

// FailureKind names the step of a patch plan that was not completed.
type FailureKind string

const (
	KindCharacter  FailureKind = "character"
	KindWeapon     FailureKind = "weapon"
	KindAwareness  FailureKind = "awareness"
	KindRefinement FailureKind = "refinement"
)

// Failure records one missed goal in one trial. Obtained and Needed are only
// set for awareness and refinement.
type Failure struct {
	Patch    string
	Kind     FailureKind
	Name     string
	Obtained int
	Needed   int
}

// Outcome is the result of one trial.
type Outcome struct {
	Characters []bool // per patch: character plus every requested copy obtained
	Weapons    []bool // per patch: weapon plus every requested refinement obtained
	Failures   []Failure
	Pulls      int
	EndJewels  int
}

// Runner plays one trial across the patch timeline.
type Runner struct {
	Patches []Patch
	Puller  *gacha.Puller
	// Trace receives per-patch and per-goal events. Nil disables tracing.
	Trace *slog.Logger
}

// Run plays every patch in order against l, which it mutates.
func (r *Runner) Run(l *ledger.Ledger) (Outcome, error) {
	n := len(r.Patches)
	out := Outcome{
		Characters: make([]bool, n),
		Weapons:    make([]bool, n),
	}
	r.Puller.ResetPulls()

	for i, p := range r.Patches {
		if i < n-1 {
			accrueSpan(l, r.Patches, i, i+1)
		}
		r.tracePatch(p, l, i == n-1)

		if err := r.playPatch(i, p, l, &out); err != nil {
			return Outcome{}, err
		}
	}

	out.Pulls = r.Puller.Pulls()
	out.EndJewels = l.Jewels
	return out, nil
}

func (r *Runner) playPatch(i int, p Patch, l *ledger.Ledger, out *Outcome) error {
	d := p.Directive
	fail := func(kind FailureKind, obtained, needed int) {
		out.Failures = append(out.Failures, Failure{
			Patch:    p.ID,
			Kind:     kind,
			Name:     d.Character,
			Obtained: obtained,
			Needed:   needed,
		})
	}

	if d.WantCharacter {
		want := 1 + d.Awareness
		got, err := pullUpTo(l, want, r.Puller.PullCharacter)
		if err != nil {
			return err
		}
		r.traceGoal(p, KindCharacter, got, want, l)
		if got < want {
			// base and first-pass copies count as one goal
			fail(KindCharacter, 0, 0)
			return nil
		}
		out.Characters[i] = true
	}

	if d.WantWeapon {
		ok, err := r.Puller.PullWeapon(l)
		if err != nil {
			return err
		}
		r.traceGoal(p, KindWeapon, boolCount(ok), 1, l)
		if !ok {
			fail(KindWeapon, 0, 0)
			return nil
		}
		out.Weapons[i] = true
	}

	dups, refines := 0, 0
	var err error
	if d.WantCharacter && d.Awareness > 0 {
		if dups, err = pullUpTo(l, d.Awareness, r.Puller.PullCharacter); err != nil {
			return err
		}
		r.traceGoal(p, KindAwareness, dups, d.Awareness, l)
	}
	if out.Weapons[i] && d.Refinement > 0 {
		if refines, err = pullUpTo(l, d.Refinement, r.Puller.PullWeapon); err != nil {
			return err
		}
		r.traceGoal(p, KindRefinement, refines, d.Refinement, l)
	}

	if d.WantCharacter && dups < d.Awareness {
		out.Characters[i] = false
		fail(KindAwareness, dups, d.Awareness)
	}
	if out.Weapons[i] && refines < d.Refinement {
		out.Weapons[i] = false
		fail(KindRefinement, refines, d.Refinement)
	}
	return nil
}

// pullUpTo calls pull until it has succeeded n times or fails once.
func pullUpTo(l *ledger.Ledger, n int, pull func(*ledger.Ledger) (bool, error)) (int, error) {
	got := 0
	for got < n {
		ok, err := pull(l)
		if err != nil {
			return got, err
		}
		if !ok {
			break
		}
		got++
	}
	return got, nil
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *Runner) tracePatch(p Patch, l *ledger.Ledger, final bool) {
	if r.Trace == nil {
		return
	}
	r.Trace.Info("patch",
		"id", p.ID,
		"final", final,
		"jewels", l.Jewels,
		"bonus_gems", l.BonusGems,
		"tickets", l.Tickets,
		"coins", l.Coins,
		"character_pity", l.CharacterPity,
		"weapon_pity", l.WeaponPity,
	)
}

func (r *Runner) traceGoal(p Patch, kind FailureKind, got, want int, l *ledger.Ledger) {
	if r.Trace == nil {
		return
	}
	r.Trace.Info("pulls",
		"patch", p.ID,
		"goal", string(kind),
		"obtained", got,
		"wanted", want,
		"jewels", l.Jewels,
		"character_pity", l.CharacterPity,
		"weapon_pity", l.WeaponPity,
	)
}
