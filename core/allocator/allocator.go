package allocator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/curtail/core/cluster"
	"github.com/kilianp07/curtail/core/model"
	"github.com/kilianp07/curtail/core/plant"
)

var (
	// ErrNegativeSetpoint rejects setpoints below zero.
	ErrNegativeSetpoint = errors.New("setpoint must not be negative")
	// ErrNoBatteryPark rejects a charging battery on a cluster that has no
	// park to compensate it on.
	ErrNoBatteryPark = errors.New("cluster has no battery park to compensate charging")
)

// Request holds the operator inputs for one calculation.
type Request struct {
	SetpointMW float64
	// BatteryMW is the battery contribution: positive when discharging (reduces
	// the energy left for the parks on any cluster), negative when charging
	// (compensated on the cluster's battery park, which must exist).
	BatteryMW float64
	// Availability is a percentage per park name, 100 when absent.
	Availability map[string]float64
	// Controllable is false for parks that cannot be commanded, true when absent.
	Controllable map[string]bool
	// MergeFixed marks the merged sub-unit as fixed. Its contribution is then
	// MergeFixedMW (or the rule's FixedMW when nil) instead of its capacity.
	MergeFixed   bool
	MergeFixedMW *float64
}

// GuardViolation reports a setpoint the cluster cannot reach.
type GuardViolation struct {
	SetpointMW  float64
	MaxOutputMW float64
}

func (g *GuardViolation) Error() string {
	return fmt.Sprintf("setpoint %.2f MW exceeds maximum cluster output %.2f MW", g.SetpointMW, g.MaxOutputMW)
}

// Outcome is the result of one calculation. Results follow the cluster member
// order, without the merged sub-unit.
type Outcome struct {
	Cluster        string
	Results        []model.AllocationResult
	Guard          *GuardViolation
	MaxOutputMW    float64
	FixedOutputMW  float64
	RemainingMW    float64
	CompensationMW float64
}

type park struct {
	name         string
	capacity     float64
	availability float64
	controllable bool
}

// Allocate computes the allocation of req.SetpointMW over the parks of c.
func Allocate(c model.Cluster, req Request) (Outcome, error) {
	if req.SetpointMW < 0 || math.IsNaN(req.SetpointMW) {
		return Outcome{}, ErrNegativeSetpoint
	}
	if req.BatteryMW < 0 && c.BatteryPark == "" {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoBatteryPark, c.Name)
	}
	avail, err := byPark(c, req.Availability)
	if err != nil {
		return Outcome{}, err
	}
	comms, err := byPark(c, req.Controllable)
	if err != nil {
		return Outcome{}, err
	}

	parks := make([]park, 0, len(c.Members))
	for _, m := range c.Members {
		p := park{name: m.Name, capacity: m.CapacityMW, availability: 100, controllable: true}
		if a, ok := avail[m.Name]; ok {
			p.availability = clampPercent(a)
		}
		if ok, set := comms[m.Name]; set {
			p.controllable = ok
		}
		parks = append(parks, p)
	}

	parks, mergedFixed := merge(c, parks, req)

	scaled := make([]float64, len(parks))
	for i, p := range parks {
		scaled[i] = p.capacity * p.availability / 100
	}
	out := Outcome{Cluster: c.Name, MaxOutputMW: floats.Sum(scaled)}

	out.FixedOutputMW = mergedFixed
	for i, p := range parks {
		if !p.controllable {
			out.FixedOutputMW += scaled[i]
		}
	}

	energy := req.SetpointMW
	switch {
	case req.BatteryMW > 0:
		energy -= req.BatteryMW
	case req.BatteryMW < 0:
		out.CompensationMW = -req.BatteryMW
	}
	out.RemainingMW = math.Max(0, energy-out.FixedOutputMW)

	if req.SetpointMW > out.MaxOutputMW {
		out.Guard = &GuardViolation{SetpointMW: req.SetpointMW, MaxOutputMW: out.MaxOutputMW}
		out.Results = make([]model.AllocationResult, len(parks))
		for i, p := range parks {
			out.Results[i] = model.AllocationResult{Park: p.name, Kind: model.Fixed, ValueMW: scaled[i]}
		}
		return out, nil
	}

	var dynIdx []int
	var weights []float64
	for i, p := range parks {
		if p.controllable {
			dynIdx = append(dynIdx, i)
			weights = append(weights, scaled[i])
		}
	}
	shares := cluster.Proportional(weights, out.RemainingMW)

	out.Results = make([]model.AllocationResult, len(parks))
	for i, p := range parks {
		out.Results[i] = model.AllocationResult{Park: p.name, Kind: model.Fixed, ValueMW: scaled[i]}
	}
	for k, i := range dynIdx {
		v := math.Min(math.Max(shares[k], 0), scaled[i])
		if out.CompensationMW > 0 && parks[i].name == c.BatteryPark {
			v = math.Min(v+out.CompensationMW, scaled[i])
		}
		out.Results[i] = model.AllocationResult{Park: parks[i].name, Kind: model.Dynamic, ValueMW: v}
	}
	return out, nil
}

// merge folds the sub-unit of the cluster's merge rule into its primary unit.
// It returns the remaining parks and the fixed output contributed by a fixed
// sub-unit, scaled by the primary unit's availability.
func merge(c model.Cluster, parks []park, req Request) ([]park, float64) {
	if c.Merge == nil {
		return parks, 0
	}
	from, into := -1, -1
	for i, p := range parks {
		switch p.name {
		case c.Merge.From:
			from = i
		case c.Merge.Into:
			into = i
		}
	}
	if from < 0 || into < 0 {
		return parks, 0
	}

	var fixed float64
	if req.MergeFixed {
		add := c.Merge.FixedMW
		if req.MergeFixedMW != nil {
			add = *req.MergeFixedMW
		}
		parks[into].capacity += add
		fixed = add * parks[into].availability / 100
	} else {
		parks[into].capacity += parks[from].capacity
	}
	out := make([]park, 0, len(parks)-1)
	out = append(out, parks[:from]...)
	out = append(out, parks[from+1:]...)
	return out, fixed
}

// byPark re-keys a per-park map on the member names of c, accepting any
// spelling that normalizes to a member name.
func byPark[V any](c model.Cluster, in map[string]V) (map[string]V, error) {
	out := make(map[string]V, len(in))
	for k, v := range in {
		name, ok := memberName(c, k)
		if !ok {
			return nil, fmt.Errorf("cluster %s has no park %q", c.Name, k)
		}
		out[name] = v
	}
	return out, nil
}

func memberName(c model.Cluster, key string) (string, bool) {
	want := plant.Fold(plant.Normalize(key))
	for _, m := range c.Members {
		if plant.Fold(plant.Normalize(m.Name)) == want {
			return m.Name, true
		}
	}
	return "", false
}

func clampPercent(a float64) float64 {
	if math.IsNaN(a) || a < 0 {
		return 0
	}
	return math.Min(a, 100)
}
