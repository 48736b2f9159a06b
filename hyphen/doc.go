// Package hyphen repairs words that were split across a line break by
// end-of-line hyphenation, as commonly produced by typesetting and OCR.
//
//	il libro è molto interes-
//	sante.
//
// becomes "il libro è molto interessante.".
//
// # Policy
//
// Rejoining is conservative: a wrongly fused pair of words does more harm
// downstream than a hyphen left in place. A candidate hyphen is merged only
// when all of the following hold:
//
//   - the hyphen ends its line (trailing spaces allowed)
//   - at most MaxLineGap blank lines separate it from the continuation
//   - the fragment before the hyphen is not in PreserveTokens (case-sensitive)
//   - the fragment is not itself the tail of a hyphenated chain (anglo-italo-)
//   - fragment-continuation is not a known compound
//   - the continuation is not a capitalized word after a non-capitalized
//     fragment (Emilia-Romagna)
//   - with a Dictionary, the merged word is known, or its halves are not
//     both known words
//
// Each candidate is decided on its own against the original text, so several
// hyphenations in one paragraph never influence each other. [Analyze] reports
// every decision with its reason.
package hyphen
