package forecast

import (
	"cmp"
	"slices"
)

// FailureStat aggregates every failure sharing a patch, kind and featured name.
type FailureStat struct {
	Patch    string      `json:"patch"`
	Kind     FailureKind `json:"kind"`
	Name     string      `json:"name"`
	Count    int         `json:"count"`
	Obtained []int       `json:"obtained,omitempty"` // partial progress, only non-zero samples
	Needed   int         `json:"needed,omitempty"`
}

// AverageObtained is the mean partial progress; ok is false without samples.
func (s FailureStat) AverageObtained() (avg float64, ok bool) {
	if len(s.Obtained) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range s.Obtained {
		sum += v
	}
	return float64(sum) / float64(len(s.Obtained)), true
}

// Report is the result of a forecast run.
type Report struct {
	SuccessRate float64       `json:"success_rate"` // percent
	Successful  int           `json:"successful"`
	Total       int           `json:"total"`
	Breakdown   []FailureStat `json:"breakdown"`
	Pulls       Stats         `json:"pulls"`
	EndJewels   Stats         `json:"end_jewels"`
}

type failureKey struct {
	patch string
	kind  FailureKind
	name  string
}

// Aggregate reduces trial outcomes into a report. The result does not depend
// on the order of outcomes.
func Aggregate(patches []Patch, outcomes []Outcome) *Report {
	rep := &Report{Total: len(outcomes), Breakdown: []FailureStat{}}
	stats := make(map[failureKey]*FailureStat)
	pulls := make([]int, 0, len(outcomes))
	jewels := make([]int, 0, len(outcomes))

	for _, o := range outcomes {
		if succeeded(patches, o) {
			rep.Successful++
		}
		pulls = append(pulls, o.Pulls)
		jewels = append(jewels, o.EndJewels)

		for _, f := range o.Failures {
			k := failureKey{patch: f.Patch, kind: f.Kind, name: f.Name}
			s, ok := stats[k]
			if !ok {
				s = &FailureStat{Patch: f.Patch, Kind: f.Kind, Name: f.Name, Needed: f.Needed}
				stats[k] = s
			}
			s.Count++
			if f.Obtained > 0 {
				s.Obtained = append(s.Obtained, f.Obtained)
			}
		}
	}

	for _, s := range stats {
		slices.Sort(s.Obtained)
		rep.Breakdown = append(rep.Breakdown, *s)
	}
	slices.SortFunc(rep.Breakdown, compareFailures)

	if rep.Total > 0 {
		rep.SuccessRate = float64(rep.Successful) / float64(rep.Total) * 100
	}
	rep.Pulls = calcStats(pulls)
	rep.EndJewels = calcStats(jewels)
	return rep
}

// succeeded reports whether every requested character and weapon was obtained.
func succeeded(patches []Patch, o Outcome) bool {
	for i, p := range patches {
		if p.Directive.WantCharacter && !o.Characters[i] {
			return false
		}
		if p.Directive.WantWeapon && !o.Weapons[i] {
			return false
		}
	}
	return true
}

// compareFailures orders by count, then patch id, then kind, then name, all descending.
func compareFailures(a, b FailureStat) int {
	return cmp.Or(
		cmp.Compare(b.Count, a.Count),
		cmp.Compare(b.Patch, a.Patch),
		cmp.Compare(b.Kind, a.Kind),
		cmp.Compare(b.Name, a.Name),
	)
}
