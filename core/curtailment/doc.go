// Package curtailment turns pasted curtailment tables into schedule rows.
//
// Input comes from email bodies or spreadsheet exports and arrives in one of
// several loosely specified layouts. Detect classifies the text from its
// header lines only; Parser.Parse then extracts one record per row (or one per
// quarter-hour cell for the matrix layout), resolves plant names through the
// catalog and splits cluster setpoints across member parks.
//
// Malformed rows are skipped and counted rather than failing the whole paste.
package curtailment
