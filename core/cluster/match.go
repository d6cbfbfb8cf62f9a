package cluster

import (
	"fmt"
	"strings"

	"github.com/kilianp07/curtail/core/model"
	"github.com/kilianp07/curtail/core/plant"
)

// MatchStrategy selects how record tokens are compared with member names.
type MatchStrategy string

const (
	// Exact compares normalized names for equality.
	Exact MatchStrategy = "exact"
	// Substring matches when the token contains the member name. Kept for the
	// email block layout, which historically matched this way.
	Substring MatchStrategy = "substring"
)

// Validate reports whether s is a known strategy.
func (s MatchStrategy) Validate() error {
	switch s {
	case Exact, Substring:
		return nil
	default:
		return fmt.Errorf("unknown match strategy %q", string(s))
	}
}

func (s MatchStrategy) matches(token, member string) bool {
	t := plant.Fold(plant.Normalize(token))
	m := plant.Fold(plant.Normalize(member))
	if t == "" || m == "" {
		return false
	}
	if s == Substring {
		return strings.Contains(t, m)
	}
	return t == m
}

// Match returns the first cluster, in priority order, with at least one member
// named by tokens, along with the named members in cluster order.
func Match(clusters []model.Cluster, tokens []string, s MatchStrategy) (model.Cluster, []model.Member, bool) {
	for _, c := range clusters {
		var named []model.Member
		for _, m := range c.Members {
			for _, tok := range tokens {
				if s.matches(tok, m.Name) {
					named = append(named, m)
					break
				}
			}
		}
		if len(named) > 0 {
			return c, named, true
		}
	}
	return model.Cluster{}, nil, false
}
