package cluster

import (
	"errors"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/curtail/core/model"
)

// ErrZeroCapacity is returned when the matched members of a proportional
// cluster have no nominal capacity to split on.
var ErrZeroCapacity = errors.New("matched members have zero nominal capacity")

// Share is the setpoint assigned to one cluster member.
type Share struct {
	Member  model.Member
	PowerMW decimal.Decimal
}

// Split divides setpoint across members. Direct clusters give every member the
// full setpoint; proportional clusters weight by nominal capacity. Values are
// rounded to 2 decimals.
func Split(c model.Cluster, members []model.Member, setpoint decimal.Decimal) ([]Share, error) {
	out := make([]Share, 0, len(members))
	if c.Direct {
		for _, m := range members {
			out = append(out, Share{Member: m, PowerMW: setpoint})
		}
		return out, nil
	}

	caps := make([]float64, len(members))
	for i, m := range members {
		caps[i] = m.CapacityMW
	}
	total := floats.Sum(caps)
	if total <= 0 {
		return nil, ErrZeroCapacity
	}
	totalD := decimal.NewFromFloat(total)
	sum := decimal.Zero
	for i, m := range members {
		p := decimal.NewFromFloat(caps[i]).Div(totalD).Mul(setpoint).Round(2)
		sum = sum.Add(p)
		out = append(out, Share{Member: m, PowerMW: p})
	}
	// rounding residue goes to the largest member so the shares add up
	if residue := setpoint.Round(2).Sub(sum); !residue.IsZero() {
		i := floats.MaxIdx(caps)
		out[i].PowerMW = out[i].PowerMW.Add(residue)
	}
	return out, nil
}

// Proportional distributes amount over weights in proportion to each weight.
// A zero total yields all zeros.
func Proportional(weights []float64, amount float64) []float64 {
	dst := make([]float64, len(weights))
	total := floats.Sum(weights)
	if total <= 0 {
		return dst
	}
	floats.ScaleTo(dst, amount/total, weights)
	return dst
}
