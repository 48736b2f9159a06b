// Package lexicon provides read-only word sets used by the preprocessing
// stages: tokens the broken-word rejoiner must never merge across, known
// hyphenated compounds, and optional dictionaries.
//
// Every set satisfies [Lookup], a plain membership test, so stages depend on
// the capability rather than on a concrete resource:
//
//	preserve := lexicon.NewSet("ben", "pre")
//	compounds := lexicon.NewFoldedSet("socio-economico", "italo-americano")
//
// Sets are immutable after construction and safe for concurrent use.
// [Load] reads one entry per line from an io.Reader; lines starting with '#'
// and blank lines are ignored. The library never opens files itself.
package lexicon
