package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/curtail/core/model"
)

var neoen = model.Cluster{
	Name: "NEOEN",
	Members: []model.Member{
		{Name: "RIO MAIOR", CapacityMW: 150},
		{Name: "SOBREEQUIP RIO MAIOR", CapacityMW: 30},
		{Name: "TORRE BELA", CapacityMW: 50},
		{Name: "SOBREEQUIP TORRE BELA", CapacityMW: 10},
	},
}

var alcoutim = model.Cluster{
	Name: "Alcoutim",
	Members: []model.Member{
		{Name: "Albercas", CapacityMW: 25.5},
		{Name: "São Marcos", CapacityMW: 44.9},
		{Name: "Viçoso", CapacityMW: 43.7},
		{Name: "Pereiro", CapacityMW: 15.9},
		{Name: "Pereiro2", CapacityMW: 10},
	},
	Merge:       &model.MergeRule{From: "Pereiro2", Into: "Pereiro", FixedMW: 10},
	BatteryPark: "Pereiro",
}

func values(o Outcome) map[string]float64 {
	m := make(map[string]float64, len(o.Results))
	for _, r := range o.Results {
		m[r.Park] = r.ValueMW
	}
	return m
}

func sumKind(o Outcome, k model.AllocationKind) float64 {
	var s float64
	for _, r := range o.Results {
		if r.Kind == k {
			s += r.ValueMW
		}
	}
	return s
}

func TestAllocateProportional(t *testing.T) {
	out, err := Allocate(neoen, Request{SetpointMW: 100})
	require.NoError(t, err)
	require.Nil(t, out.Guard)
	v := values(out)
	assert.InDelta(t, 62.5, v["RIO MAIOR"], 1e-9)
	assert.InDelta(t, 12.5, v["SOBREEQUIP RIO MAIOR"], 1e-9)
	assert.InDelta(t, 20.8333, v["TORRE BELA"], 1e-4)
	assert.InDelta(t, 4.1667, v["SOBREEQUIP TORRE BELA"], 1e-4)
	assert.InDelta(t, 100, sumKind(out, model.Dynamic), 1e-9)
	for _, r := range out.Results {
		assert.Equal(t, model.Dynamic, r.Kind)
	}
}

func TestAllocateGuardFallsBackToCapacity(t *testing.T) {
	out, err := Allocate(neoen, Request{
		SetpointMW:   200,
		Availability: map[string]float64{"RIO MAIOR": 50},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Guard)
	assert.InDelta(t, 165, out.MaxOutputMW, 1e-9)
	assert.Contains(t, out.Guard.Error(), "exceeds")
	v := values(out)
	assert.InDelta(t, 75, v["RIO MAIOR"], 1e-9)
	assert.InDelta(t, 30, v["SOBREEQUIP RIO MAIOR"], 1e-9)
	for _, r := range out.Results {
		assert.Equal(t, model.Fixed, r.Kind)
	}
}

func TestAllocateAtMaxOutputIsNotGuarded(t *testing.T) {
	out, err := Allocate(neoen, Request{SetpointMW: 240})
	require.NoError(t, err)
	assert.Nil(t, out.Guard)
	assert.InDelta(t, 150, values(out)["RIO MAIOR"], 1e-9)
}

func TestAllocateMergeFixedSubUnit(t *testing.T) {
	out, err := Allocate(alcoutim, Request{SetpointMW: 100, MergeFixed: true})
	require.NoError(t, err)
	require.Nil(t, out.Guard)
	require.Len(t, out.Results, 4)
	for _, r := range out.Results {
		assert.NotEqual(t, "Pereiro2", r.Park)
	}
	assert.InDelta(t, 140, out.MaxOutputMW, 1e-9)
	assert.InDelta(t, 10, out.FixedOutputMW, 1e-9)
	assert.InDelta(t, 90, out.RemainingMW, 1e-9)
	assert.InDelta(t, 90, sumKind(out, model.Dynamic), 1e-9)
	assert.InDelta(t, 90*25.9/140, values(out)["Pereiro"], 1e-9)
}

func TestAllocateMergeFixedOverrideAndAvailability(t *testing.T) {
	add := 4.0
	out, err := Allocate(alcoutim, Request{
		SetpointMW:   50,
		MergeFixed:   true,
		MergeFixedMW: &add,
		Availability: map[string]float64{"pereiro": 50},
	})
	require.NoError(t, err)
	// sub-unit contribution scales with the primary unit's availability
	assert.InDelta(t, 2, out.FixedOutputMW, 1e-9)
	assert.InDelta(t, 25.5+44.9+43.7+(15.9+4)/2, out.MaxOutputMW, 1e-9)
}

func TestAllocateMergeNominalShare(t *testing.T) {
	out, err := Allocate(alcoutim, Request{SetpointMW: 100})
	require.NoError(t, err)
	assert.InDelta(t, 0, out.FixedOutputMW, 1e-9)
	assert.InDelta(t, 100, sumKind(out, model.Dynamic), 1e-9)
}

func TestAllocateOfflinePark(t *testing.T) {
	out, err := Allocate(alcoutim, Request{
		SetpointMW:   100,
		MergeFixed:   true,
		Controllable: map[string]bool{"VICOSO": false},
	})
	require.NoError(t, err)
	v := values(out)
	assert.InDelta(t, 43.7, v["Viçoso"], 1e-9)
	assert.InDelta(t, 53.7, out.FixedOutputMW, 1e-9)
	assert.InDelta(t, 46.3, sumKind(out, model.Dynamic), 1e-9)
	for _, r := range out.Results {
		if r.Park == "Viçoso" {
			assert.Equal(t, model.Fixed, r.Kind)
		} else {
			assert.Equal(t, model.Dynamic, r.Kind)
		}
	}
}

func TestAllocateBatteryDischarge(t *testing.T) {
	out, err := Allocate(alcoutim, Request{SetpointMW: 100, BatteryMW: 20, MergeFixed: true})
	require.NoError(t, err)
	assert.InDelta(t, 70, out.RemainingMW, 1e-9)
	assert.InDelta(t, 70, sumKind(out, model.Dynamic), 1e-9)
}

func TestAllocateBatteryChargeCompensation(t *testing.T) {
	base, err := Allocate(alcoutim, Request{SetpointMW: 60, MergeFixed: true})
	require.NoError(t, err)
	out, err := Allocate(alcoutim, Request{SetpointMW: 60, BatteryMW: -5, MergeFixed: true})
	require.NoError(t, err)
	assert.InDelta(t, 5, out.CompensationMW, 1e-9)
	assert.InDelta(t, values(base)["Pereiro"]+5, values(out)["Pereiro"], 1e-9)
	assert.InDelta(t, values(base)["Albercas"], values(out)["Albercas"], 1e-9)

	clamped, err := Allocate(alcoutim, Request{SetpointMW: 60, BatteryMW: -100, MergeFixed: true})
	require.NoError(t, err)
	assert.InDelta(t, 25.9, values(clamped)["Pereiro"], 1e-9)
}

func TestAllocateBatteryWithoutBatteryPark(t *testing.T) {
	out, err := Allocate(neoen, Request{SetpointMW: 100, BatteryMW: 40})
	require.NoError(t, err)
	assert.InDelta(t, 60, out.RemainingMW, 1e-9)
	assert.InDelta(t, 60, sumKind(out, model.Dynamic), 1e-9)

	_, err = Allocate(neoen, Request{SetpointMW: 100, BatteryMW: -5})
	assert.ErrorIs(t, err, ErrNoBatteryPark)
}

func TestAllocateUnknownPark(t *testing.T) {
	_, err := Allocate(neoen, Request{SetpointMW: 10, Controllable: map[string]bool{"PEREA": false}})
	assert.Error(t, err)
}

func TestAllocateNegativeSetpoint(t *testing.T) {
	_, err := Allocate(neoen, Request{SetpointMW: -1})
	assert.ErrorIs(t, err, ErrNegativeSetpoint)
}

func TestAllocateDeterministic(t *testing.T) {
	req := Request{SetpointMW: 77, MergeFixed: true, Availability: map[string]float64{"Albercas": 80}}
	a, err := Allocate(alcoutim, req)
	require.NoError(t, err)
	b, err := Allocate(alcoutim, req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAllocateDoesNotMutateCluster(t *testing.T) {
	_, err := Allocate(alcoutim, Request{SetpointMW: 50, MergeFixed: true})
	require.NoError(t, err)
	assert.Len(t, alcoutim.Members, 5)
	assert.Equal(t, 15.9, alcoutim.Members[3].CapacityMW)
}
