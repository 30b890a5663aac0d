package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ThreeOfFour(t *testing.T) {
	patches := []Patch{
		{ID: "P1", Size: SizeSmall, Directive: Directive{WantCharacter: true, Character: "joker"}},
	}
	ok := Outcome{Characters: []bool{true}, Weapons: []bool{false}, Pulls: 80}
	failed := Outcome{
		Characters: []bool{false},
		Weapons:    []bool{false},
		Failures:   []Failure{{Patch: "P1", Kind: KindCharacter, Name: "joker"}},
		Pulls:      40,
	}

	rep := Aggregate(patches, []Outcome{ok, ok, failed, ok})

	assert.Equal(t, 75.0, rep.SuccessRate)
	assert.Equal(t, 3, rep.Successful)
	assert.Equal(t, 4, rep.Total)
	require.Len(t, rep.Breakdown, 1)
	assert.Equal(t, FailureStat{Patch: "P1", Kind: KindCharacter, Name: "joker", Count: 1}, rep.Breakdown[0])
	assert.Equal(t, 70.0, rep.Pulls.Mean)
	assert.Equal(t, 80.0, rep.Pulls.P50)
}

func TestAggregate_Empty(t *testing.T) {
	rep := Aggregate(nil, nil)
	assert.Equal(t, 0.0, rep.SuccessRate)
	assert.Equal(t, 0, rep.Total)
	assert.Empty(t, rep.Breakdown)
	assert.Equal(t, Stats{}, rep.Pulls)
}

func TestAggregate_WeaponFlagCountsTowardsSuccess(t *testing.T) {
	patches := []Patch{
		{ID: "P1", Size: SizeSmall, Directive: Directive{WantCharacter: true, WantWeapon: true}},
		{ID: "P2", Size: SizeSmall},
	}
	rep := Aggregate(patches, []Outcome{
		{Characters: []bool{true, false}, Weapons: []bool{false, false}},
		{Characters: []bool{true, false}, Weapons: []bool{true, false}},
	})
	assert.Equal(t, 1, rep.Successful)
	assert.Equal(t, 50.0, rep.SuccessRate)
}

func TestAggregate_PartialProgressSamples(t *testing.T) {
	mk := func(obtained int) Outcome {
		return Outcome{
			Characters: []bool{false},
			Weapons:    []bool{false},
			Failures:   []Failure{{Patch: "P1", Kind: KindAwareness, Name: "noir", Obtained: obtained, Needed: 3}},
		}
	}
	rep := Aggregate([]Patch{{ID: "P1"}}, []Outcome{mk(2), mk(0), mk(1)})

	require.Len(t, rep.Breakdown, 1)
	s := rep.Breakdown[0]
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, []int{1, 2}, s.Obtained, "zero progress is not sampled")
	assert.Equal(t, 3, s.Needed)

	avg, ok := s.AverageObtained()
	assert.True(t, ok)
	assert.Equal(t, 1.5, avg)

	_, ok = FailureStat{}.AverageObtained()
	assert.False(t, ok)
}

func TestAggregate_Ordering(t *testing.T) {
	fails := func(fs ...Failure) Outcome {
		return Outcome{Characters: []bool{false, false}, Weapons: []bool{false, false}, Failures: fs}
	}
	a := Failure{Patch: "1.0", Kind: KindCharacter, Name: "x"}
	b := Failure{Patch: "1.1", Kind: KindCharacter, Name: "y"}
	c := Failure{Patch: "1.1", Kind: KindWeapon, Name: "y"}
	d := Failure{Patch: "1.0", Kind: KindWeapon, Name: "x"}

	outcomes := []Outcome{fails(a, d), fails(a), fails(b), fails(c), fails(a)}
	patches := []Patch{{ID: "1.0"}, {ID: "1.1"}}

	want := []FailureStat{
		{Patch: "1.0", Kind: KindCharacter, Name: "x", Count: 3},
		{Patch: "1.1", Kind: KindWeapon, Name: "y", Count: 1},
		{Patch: "1.1", Kind: KindCharacter, Name: "y", Count: 1},
		{Patch: "1.0", Kind: KindWeapon, Name: "x", Count: 1},
	}
	assert.Equal(t, want, Aggregate(patches, outcomes).Breakdown)

	// arrival order must not matter
	reversed := []Outcome{outcomes[4], outcomes[3], outcomes[2], outcomes[1], outcomes[0]}
	assert.Equal(t, want, Aggregate(patches, reversed).Breakdown)
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{4, 1, 3, 2})
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 1.25, s.Var)
	assert.InDelta(t, 1.118, s.StdDev, 0.001)
	assert.Equal(t, 2.5, s.P50)
	assert.InDelta(t, 3.7, s.P90, 1e-9)

	one := calcStats([]int{7})
	assert.Equal(t, 7.0, one.P50)
	assert.Equal(t, 7.0, one.P99)
}
