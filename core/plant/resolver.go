package plant

import (
	"fmt"
	"sort"

	"github.com/kilianp07/curtail/core/model"
)

// UnresolvedPolicy selects what happens to tokens missing from the plant table.
type UnresolvedPolicy string

const (
	// Passthrough keeps the unknown token visible in the output.
	Passthrough UnresolvedPolicy = "passthrough"
	// Drop silently skips rows whose token cannot be resolved.
	Drop UnresolvedPolicy = "drop"
)

// Validate reports whether p is a known policy.
func (p UnresolvedPolicy) Validate() error {
	switch p {
	case Passthrough, Drop:
		return nil
	default:
		return fmt.Errorf("unknown unresolved policy %q", string(p))
	}
}

// Resolver looks tokens up in a catalog. It is safe for concurrent use once
// built since it never mutates its indexes.
type Resolver struct {
	exact      map[string]model.Site
	folded     map[string]model.Site
	composites map[string]model.CompositePlant
}

// NewResolver indexes the plant table and composite plants of the catalog.
func NewResolver(cat model.Catalog) *Resolver {
	r := &Resolver{
		exact:      make(map[string]model.Site, len(cat.Plants)),
		folded:     make(map[string]model.Site, len(cat.Plants)),
		composites: make(map[string]model.CompositePlant, len(cat.Composites)),
	}
	keys := make([]string, 0, len(cat.Plants))
	for k := range cat.Plants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ambiguous := make(map[string]struct{})
	for _, k := range keys {
		site := cat.Plants[k]
		n := Normalize(k)
		r.exact[n] = site
		f := Fold(n)
		if prev, ok := r.folded[f]; ok && prev != site {
			ambiguous[f] = struct{}{}
			continue
		}
		r.folded[f] = site
	}
	// folded spellings shared by two different sites only resolve exactly
	for f := range ambiguous {
		delete(r.folded, f)
	}
	for _, cp := range cat.Composites {
		n := Normalize(cp.Token)
		r.composites[n] = cp
		if f := Fold(n); f != n {
			if _, ok := r.composites[f]; !ok {
				r.composites[f] = cp
			}
		}
	}
	return r
}

// Lookup returns the canonical site for token.
func (r *Resolver) Lookup(token string) (model.Site, bool) {
	n := Normalize(token)
	if site, ok := r.exact[n]; ok {
		return site, true
	}
	site, ok := r.folded[Fold(n)]
	return site, ok
}

// Composite returns the composite plant registered for token, if any.
func (r *Resolver) Composite(token string) (model.CompositePlant, bool) {
	n := Normalize(token)
	cp, ok := r.composites[n]
	if !ok {
		cp, ok = r.composites[Fold(n)]
	}
	return cp, ok
}

// Fallback decides how an unknown token is rendered.
type Fallback struct {
	Policy UnresolvedPolicy
	// GuessPrefix, when set, replaces the passthrough value with the prefix
	// followed by the compacted token ("PV-" + "LASVEGAS").
	GuessPrefix string
}

// Resolve returns the output site for token. The second value is false when
// the token is unknown and the fallback policy drops it.
func (r *Resolver) Resolve(token string, fb Fallback) (string, bool) {
	if site, ok := r.Lookup(token); ok {
		return string(site), true
	}
	if fb.Policy == Drop {
		return "", false
	}
	n := Normalize(token)
	if n == "" {
		return "", false
	}
	if fb.GuessPrefix != "" {
		return fb.GuessPrefix + Compact(n), true
	}
	return n, true
}
