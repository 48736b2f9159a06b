// Package sentence splits cleaned text into sentences.
//
// Two methods are available. The simple method is rule based: a run of
// sentence-final punctuation (. ! ? …), optionally followed by closing quotes
// or brackets, ends a sentence when it is followed by whitespace and a
// character that is not a lower-case letter. Known abbreviations for the
// language, single-letter initials and numbers do not end a sentence.
//
//	seq, err := sentence.Split(ctx, "Il Sig. Rossi è arrivato. Poi è ripartito.", sentence.DefaultOptions())
//	for s := range seq {
//		fmt.Println(s)
//	}
//
// The model method delegates to a caller-supplied [Segmenter], for instance
// a client for an NLP service.
//
// Blank lines always separate sentences. With KeepLineBreaks the sequence
// carries a marker element between the sentences of consecutive paragraphs.
// Every sentence is trimmed and has its inner whitespace collapsed to single
// spaces.
package sentence
