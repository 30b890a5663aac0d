package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ValidateCatalog checks a patch database.
func ValidateCatalog(cat RawCatalog) error {
	var errs []string

	if len(cat.Patches) == 0 {
		errs = append(errs, "patches must not be empty")
	}
	seen := make(map[string]bool, len(cat.Patches))
	for i, p := range cat.Patches {
		if p.Version == "" {
			errs = append(errs, fmt.Sprintf("patches[%d].version is required", i))
		} else if seen[p.Version] {
			errs = append(errs, fmt.Sprintf("patches[%d].version %q is duplicated", i, p.Version))
		}
		seen[p.Version] = true

		switch p.Type {
		case "small", "large":
		default:
			errs = append(errs, fmt.Sprintf("patches[%d].type must be one of: small, large", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateRun checks the parts of a run file that do not need the catalog.
// Bounds that depend on the banner are left to forecast.Request.Validate.
func ValidateRun(run RawRun) error {
	var errs []string

	if run.Mode != nil {
		switch *run.Mode {
		case "average", "below_average", "worst":
		default:
			errs = append(errs, "mode must be one of: average, below_average, worst")
		}
	}
	if run.Banner != nil {
		switch *run.Banner {
		case "targeted", "chance":
		default:
			errs = append(errs, "banner must be one of: targeted, chance")
		}
	}

	res := run.Resources
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"resources.jewels", res.Jewels},
		{"resources.tickets", res.Tickets},
		{"resources.coins", res.Coins},
		{"resources.character_pity", res.CharacterPity},
		{"resources.weapon_pity", res.WeaponPity},
	} {
		if f.v != nil && *f.v < 0 {
			errs = append(errs, f.name+" must be >= 0")
		}
	}
	if run.Pass != nil && run.Pass.DaysLeft < 0 {
		errs = append(errs, "pass.days_left must be >= 0")
	}
	if run.Subscription != nil && run.Subscription.DaysLeft < 0 {
		errs = append(errs, "subscription.days_left must be >= 0")
	}

	for _, v := range slices.Sorted(maps.Keys(run.Plan)) {
		if item := run.Plan[v]; item.Awareness < 0 || item.Refinement < 0 {
			errs = append(errs, fmt.Sprintf("plan[%s]: awareness and refinement must be >= 0", v))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("run validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
