// Package normalize provides the character-level cleanup stages of the
// preprocessing pipeline.
//
// # Unicode
//
// [Unicode] applies one of the canonical normalization forms (NFC, NFD, NFKC,
// NFKD) and optionally filters characters by general category:
//
//	out, err := normalize.Unicode(text, normalize.DefaultUnicodeOptions())
//
// Filtered characters are dropped, or replaced with
// [UnicodeOptions.Replacement] when it is set. Line breaks, tabs, spaces,
// sentence-final punctuation and hyphens always survive filtering.
//
// # Quotes and Accents
//
// [Quotes] maps typographic quotes to their ASCII forms, unifies apostrophe
// variants, and can transliterate accented letters to ASCII using a built-in
// table merged with a caller-supplied map.
//
// # Case
//
// [Lower] lower-cases text with the language-aware casers from
// golang.org/x/text/cases. With Aggressive unset, acronyms (two or more
// upper-case letters not followed by a lower-case letter) are kept.
//
// # Whitespace
//
// [Whitespace] collapses horizontal whitespace, optionally collapses runs of
// blank lines (to one newline, or to one paragraph break with
// PreserveParagraphs), and trims the text. It is idempotent for every option
// combination.
//
// All functions are pure and safe for concurrent use.
package normalize
