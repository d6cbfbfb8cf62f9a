package model

import (
	"fmt"
	"strings"
)

// Member is a park belonging to a cluster.
type Member struct {
	// Name is the park name as it appears in pasted tables.
	Name string `json:"name" yaml:"name"`
	// Site is the canonical identifier. When empty the plant table is used.
	Site Site `json:"site,omitempty" yaml:"site,omitempty"`
	// CapacityMW is the nominal capacity used for proportional splits.
	CapacityMW float64 `json:"capacity_mw" yaml:"capacity_mw"`
}

// MergeRule folds a secondary sub-unit into its primary unit before an
// allocation. FixedMW is the default add-on used when the sub-unit is fixed.
type MergeRule struct {
	From    string  `json:"from" yaml:"from"`
	Into    string  `json:"into" yaml:"into"`
	FixedMW float64 `json:"fixed_mw" yaml:"fixed_mw"`
}

// Cluster is a group of parks sharing one control setpoint.
type Cluster struct {
	Name string `json:"name" yaml:"name"`
	// Direct clusters apply the full setpoint to every matched member.
	Direct      bool       `json:"direct" yaml:"direct"`
	Members     []Member   `json:"members" yaml:"members"`
	Merge       *MergeRule `json:"merge,omitempty" yaml:"merge,omitempty"`
	BatteryPark string     `json:"battery_park,omitempty" yaml:"battery_park,omitempty"`
}

// Member returns the member with the given name.
func (c Cluster) Member(name string) (Member, bool) {
	for _, m := range c.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Share is one fixed fraction of a composite plant.
type Share struct {
	Site     Site    `json:"site" yaml:"site"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// CompositePlant is a single token that expands into several sites.
type CompositePlant struct {
	Token  string  `json:"token" yaml:"token"`
	Shares []Share `json:"shares" yaml:"shares"`
}

// Catalog holds the static reference data: plant table, clusters in matching
// priority order and composite plants. It is loaded once and treated as
// read-only afterwards.
type Catalog struct {
	Plants     map[string]Site  `json:"plants" yaml:"plants"`
	Clusters   []Cluster        `json:"clusters" yaml:"clusters"`
	Composites []CompositePlant `json:"composites" yaml:"composites"`
}

// Cluster returns the cluster with the given name (case-insensitive).
func (c Catalog) Cluster(name string) (Cluster, bool) {
	for _, cl := range c.Clusters {
		if strings.EqualFold(cl.Name, name) {
			return cl, true
		}
	}
	return Cluster{}, false
}

// Validate checks that the catalog can be serialized and allocated safely.
func (c Catalog) Validate() error {
	for token, site := range c.Plants {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("plant table: empty token for site %q", site)
		}
		if err := validateSite(site); err != nil {
			return fmt.Errorf("plant %q: %w", token, err)
		}
	}
	seen := make(map[string]struct{}, len(c.Clusters))
	for _, cl := range c.Clusters {
		if cl.Name == "" {
			return fmt.Errorf("cluster without name")
		}
		key := strings.ToUpper(cl.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate cluster %s", cl.Name)
		}
		seen[key] = struct{}{}
		if len(cl.Members) == 0 {
			return fmt.Errorf("cluster %s has no members", cl.Name)
		}
		for _, m := range cl.Members {
			if m.CapacityMW < 0 {
				return fmt.Errorf("cluster %s: negative capacity for %s", cl.Name, m.Name)
			}
			if m.Site != "" {
				if err := validateSite(m.Site); err != nil {
					return fmt.Errorf("cluster %s member %s: %w", cl.Name, m.Name, err)
				}
			}
		}
		if cl.Merge != nil {
			if _, ok := cl.Member(cl.Merge.From); !ok {
				return fmt.Errorf("cluster %s: merge source %s is not a member", cl.Name, cl.Merge.From)
			}
			if _, ok := cl.Member(cl.Merge.Into); !ok {
				return fmt.Errorf("cluster %s: merge target %s is not a member", cl.Name, cl.Merge.Into)
			}
		}
		if cl.BatteryPark != "" {
			if _, ok := cl.Member(cl.BatteryPark); !ok {
				return fmt.Errorf("cluster %s: battery park %s is not a member", cl.Name, cl.BatteryPark)
			}
		}
	}
	for _, cp := range c.Composites {
		if len(cp.Shares) == 0 {
			return fmt.Errorf("composite %s has no shares", cp.Token)
		}
		for _, s := range cp.Shares {
			if err := validateSite(s.Site); err != nil {
				return fmt.Errorf("composite %s: %w", cp.Token, err)
			}
		}
	}
	return nil
}

func validateSite(s Site) error {
	if s == "" {
		return fmt.Errorf("empty site")
	}
	if strings.ContainsRune(string(s), ';') {
		return fmt.Errorf("site %q contains ';'", s)
	}
	return nil
}
