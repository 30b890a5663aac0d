// resolve.go
package catalog

import (
	"fmt"
	"maps"
	"slices"

	"github.com/xtding233/gacha-forecast/internal/forecast"
	"github.com/xtding233/gacha-forecast/internal/gacha"
)

// Overrides carries command-line overrides applied on top of the run file.
type Overrides struct {
	Mode   *string
	Banner *string
	Jewels *int
	Start  *string
}

// Resolve joins the catalog with a run file into a forecast request.
// The timeline is every catalog patch from Start (or the first) onwards;
// patches without a plan entry still earn income.
func Resolve(cat RawCatalog, run RawRun, o Overrides) (forecast.Request, error) {
	run = mergeRun(run, RawRun{Mode: o.Mode, Banner: o.Banner, Start: o.Start})
	if o.Jewels != nil {
		run.Resources.Jewels = o.Jewels
	}
	if err := ValidateRun(run); err != nil {
		return forecast.Request{}, err
	}

	req := forecast.Request{
		Mode:          gacha.Mode(deref(run.Mode, string(gacha.ModeAverage))),
		Banner:        gacha.BannerKind(deref(run.Banner, string(gacha.BannerTargeted))),
		Jewels:        deref(run.Resources.Jewels, 0),
		Tickets:       deref(run.Resources.Tickets, 0),
		Coins:         deref(run.Resources.Coins, 0),
		CharacterPity: deref(run.Resources.CharacterPity, 0),
		WeaponPity:    deref(run.Resources.WeaponPity, 0),
	}
	if run.Pass != nil {
		req.Pass, req.PassDays = run.Pass.Active, run.Pass.DaysLeft
	}
	if run.Subscription != nil {
		req.Subscription, req.SubscriptionDays = run.Subscription.Active, run.Subscription.DaysLeft
	}

	start := 0
	if run.Start != nil {
		start = -1
		for i, p := range cat.Patches {
			if p.Version == *run.Start {
				start = i
				break
			}
		}
		if start < 0 {
			return forecast.Request{}, fmt.Errorf("start patch %q not in catalog", *run.Start)
		}
	}

	known := make(map[string]bool, len(cat.Patches))
	for _, p := range cat.Patches[start:] {
		known[p.Version] = true
		item := run.Plan[p.Version]
		req.Patches = append(req.Patches, forecast.Patch{
			ID:   p.Version,
			Size: forecast.Size(p.Type),
			Directive: forecast.Directive{
				WantCharacter: item.PullChar,
				Character:     p.FeaturedCharacter,
				Awareness:     item.Awareness,
				WantWeapon:    item.PullWeapon,
				Refinement:    item.Refinement,
			},
		})
	}
	for _, v := range slices.Sorted(maps.Keys(run.Plan)) {
		if !known[v] {
			return forecast.Request{}, fmt.Errorf("plan references patch %q outside the timeline", v)
		}
	}

	if err := req.Validate(); err != nil {
		return forecast.Request{}, err
	}
	return req, nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
