package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCatalog() Catalog {
	return Catalog{
		Plants: map[string]Site{"PEREA": "PV-PEREA", "VEGON": "PV-VEGON"},
		Clusters: []Cluster{{
			Name: "Alcoutim",
			Members: []Member{
				{Name: "Pereiro", CapacityMW: 15.9},
				{Name: "Pereiro2", CapacityMW: 10},
			},
			Merge:       &MergeRule{From: "Pereiro2", Into: "Pereiro", FixedMW: 10},
			BatteryPark: "Pereiro",
		}},
		Composites: []CompositePlant{{
			Token:  "BOTH",
			Shares: []Share{{Site: "PV-PEREA", Fraction: 0.5}, {Site: "PV-VEGON", Fraction: 0.5}},
		}},
	}
}

func TestCatalogValidate(t *testing.T) {
	assert.NoError(t, validCatalog().Validate())

	cases := map[string]func(*Catalog){
		"semicolon in site":  func(c *Catalog) { c.Plants["PEREA"] = "PV;PEREA" },
		"empty token":        func(c *Catalog) { c.Plants[" "] = "PV-X" },
		"duplicate cluster":  func(c *Catalog) { c.Clusters = append(c.Clusters, Cluster{Name: "ALCOUTIM", Members: []Member{{Name: "x"}}}) },
		"no members":         func(c *Catalog) { c.Clusters[0].Members = nil },
		"negative capacity":  func(c *Catalog) { c.Clusters[0].Members[0].CapacityMW = -1 },
		"merge source":       func(c *Catalog) { c.Clusters[0].Merge = &MergeRule{From: "Ghost", Into: "Pereiro"} },
		"merge target":       func(c *Catalog) { c.Clusters[0].Merge = &MergeRule{From: "Pereiro2", Into: "Ghost"} },
		"battery park":       func(c *Catalog) { c.Clusters[0].BatteryPark = "Ghost" },
		"composite no share": func(c *Catalog) { c.Composites[0].Shares = nil },
		"composite site":     func(c *Catalog) { c.Composites[0].Shares[0].Site = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validCatalog()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestCatalogCluster(t *testing.T) {
	c := validCatalog()
	cl, ok := c.Cluster("alcoutim")
	assert.True(t, ok)
	assert.Equal(t, "Alcoutim", cl.Name)
	_, ok = c.Cluster("NEOEN")
	assert.False(t, ok)

	m, ok := cl.Member("Pereiro2")
	assert.True(t, ok)
	assert.Equal(t, 10.0, m.CapacityMW)
}

func TestAllocationKind(t *testing.T) {
	assert.Equal(t, "fixed", Fixed.String())
	assert.Equal(t, "dynamic", Dynamic.String())
	assert.Equal(t, "unknown", AllocationKind(7).String())
	b, err := Dynamic.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "dynamic", string(b))
}
