// Package report renders forecast reports for people.
package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xtding233/gacha-forecast/internal/forecast"
)

// Grade buckets a success rate.
type Grade string

const (
	GradeGood Grade = "good" // >= 75%
	GradeFair Grade = "fair" // >= 50%
	GradePoor Grade = "poor"
)

// GradeOf buckets a success rate given in percent.
func GradeOf(rate float64) Grade {
	switch {
	case rate >= 75:
		return GradeGood
	case rate >= 50:
		return GradeFair
	default:
		return GradePoor
	}
}

// DisplayName turns a character id into a readable name:
// "joker-summer_outfit" becomes "Joker (Summer Outfit)".
func DisplayName(id string) string {
	if base, variant, ok := strings.Cut(id, "-"); ok {
		id = base + " (" + variant + ")"
	}
	id = strings.ReplaceAll(id, "_", " ")
	return cases.Title(language.English).String(id)
}

// Describe is the one-line headline of a failure.
func Describe(s forecast.FailureStat) string {
	p := message.NewPrinter(language.English)
	name := DisplayName(s.Name)

	var what string
	switch s.Kind {
	case forecast.KindCharacter:
		what = name
	case forecast.KindWeapon:
		what = name + "'s weapon"
	case forecast.KindAwareness:
		what = "all of " + name + "'s awareness"
	case forecast.KindRefinement:
		what = "all " + name + " refinements"
	default:
		return p.Sprintf("Patch %s: %s", s.Patch, s.Kind)
	}
	line := p.Sprintf("Patch %s: failed to obtain %s", s.Patch, what)
	if avg, ok := s.AverageObtained(); ok {
		line += p.Sprintf(" (avg %.1f of %d)", avg, s.Needed)
	}
	return line
}

// Render writes rep as plain text.
func Render(w io.Writer, rep *forecast.Report) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString(p.Sprintf("Success rate: %.2f%% (%s)\n", rep.SuccessRate, GradeOf(rep.SuccessRate)))
	b.WriteString(p.Sprintf("Obtained every planned character and weapon in %d of %d simulations\n",
		rep.Successful, rep.Total))

	if len(rep.Breakdown) > 0 {
		b.WriteString("\nFailure points\n")
		for _, s := range rep.Breakdown {
			pct := 0.0
			if rep.Total > 0 {
				pct = float64(s.Count) / float64(rep.Total) * 100
			}
			b.WriteString(Describe(s) + "\n")
			b.WriteString(p.Sprintf("  failed in %.1f%% of runs (%d / %d)\n", pct, s.Count, rep.Total))
		}
	}

	if rep.Total > 0 {
		b.WriteString("\n")
		b.WriteString(p.Sprintf("Pulls per run: mean %.1f, p50 %.0f, p90 %.0f, p99 %.0f\n",
			rep.Pulls.Mean, rep.Pulls.P50, rep.Pulls.P90, rep.Pulls.P99))
		b.WriteString(p.Sprintf("Jewels left:   mean %.1f, p50 %.0f, p90 %.0f, p99 %.0f\n",
			rep.EndJewels.Mean, rep.EndJewels.P50, rep.EndJewels.P90, rep.EndJewels.P99))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
