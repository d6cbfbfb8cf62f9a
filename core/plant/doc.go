// Package plant maps free-text park names, as typed in curtailment emails and
// spreadsheet exports, to canonical site identifiers.
//
// Tokens are normalized (trimmed, upper-cased, whitespace collapsed, leading
// spreadsheet apostrophes removed) before lookup. The Resolver also indexes an
// accent-folded form of every known token so that "SÃO MARCOS" and
// "SAO MARCOS" resolve to the same site. Composite plants expand a single token
// into several sites with fixed shares.
package plant
