package plant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/curtail/core/model"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		Plants: map[string]model.Site{
			"PEREA":       "PV-PEREA",
			"Viçoso":      "PV-VICOSO",
			"HAZAÑA":      "PV-HAZAÑA",
			"HAZANA":      "PV-HAZANA",
			"Medina  del campo I": "PV-MEDINA DEL CAMPO I",
		},
		Composites: []model.CompositePlant{{
			Token: "Torre Bela Total",
			Shares: []model.Share{
				{Site: "NON-PV-TORRE BELA BASE", Fraction: 0.8},
				{Site: "NON-PV-TORRE BELA REEQUIPAMIENTO", Fraction: 0.2},
			},
		}},
	}
}

func TestResolverLookup(t *testing.T) {
	r := NewResolver(testCatalog())

	site, ok := r.Lookup(" perea")
	require.True(t, ok)
	assert.Equal(t, model.Site("PV-PEREA"), site)

	site, ok = r.Lookup("medina del   CAMPO i")
	require.True(t, ok)
	assert.Equal(t, model.Site("PV-MEDINA DEL CAMPO I"), site)

	// both spellings of an accented name resolve
	for _, tok := range []string{"VIÇOSO", "vicoso"} {
		site, ok = r.Lookup(tok)
		require.True(t, ok, tok)
		assert.Equal(t, model.Site("PV-VICOSO"), site)
	}

	_, ok = r.Lookup("UNKNOWN")
	assert.False(t, ok)
}

func TestResolverAmbiguousFoldKeepsExact(t *testing.T) {
	r := NewResolver(testCatalog())
	site, ok := r.Lookup("hazaña")
	require.True(t, ok)
	assert.Equal(t, model.Site("PV-HAZAÑA"), site)
	site, ok = r.Lookup("HAZANA")
	require.True(t, ok)
	assert.Equal(t, model.Site("PV-HAZANA"), site)
}

func TestResolverResolvePolicies(t *testing.T) {
	r := NewResolver(testCatalog())

	got, ok := r.Resolve("perea", Fallback{Policy: Drop})
	assert.True(t, ok)
	assert.Equal(t, "PV-PEREA", got)

	_, ok = r.Resolve("las vegas", Fallback{Policy: Drop})
	assert.False(t, ok)

	got, ok = r.Resolve("las vegas", Fallback{Policy: Passthrough})
	assert.True(t, ok)
	assert.Equal(t, "LAS VEGAS", got)

	got, ok = r.Resolve("las vegas", Fallback{Policy: Passthrough, GuessPrefix: "PV-"})
	assert.True(t, ok)
	assert.Equal(t, "PV-LASVEGAS", got)
}

func TestResolverComposite(t *testing.T) {
	r := NewResolver(testCatalog())
	cp, ok := r.Composite("TORRE BELA TOTAL")
	require.True(t, ok)
	assert.Len(t, cp.Shares, 2)
	_, ok = r.Composite("TORRE BELA")
	assert.False(t, ok)
}

func TestUnresolvedPolicyValidate(t *testing.T) {
	assert.NoError(t, Passthrough.Validate())
	assert.NoError(t, Drop.Validate())
	assert.Error(t, UnresolvedPolicy("ignore").Validate())
}
