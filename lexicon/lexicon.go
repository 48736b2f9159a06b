package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Lookup is a read-only membership test.
type Lookup interface {
	Contains(word string) bool
}

// Set is a case-sensitive word set.
type Set struct {
	words map[string]struct{}
}

// NewSet creates a case-sensitive set. Entries are trimmed; empty entries are
// ignored.
func NewSet(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
	return s
}

// Contains reports whether word is in the set. A nil set contains nothing.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Words returns the entries in sorted order.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// FoldedSet is a case-insensitive word set.
type FoldedSet struct {
	set *Set
}

// NewFoldedSet creates a set that matches regardless of case.
func NewFoldedSet(words ...string) *FoldedSet {
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = strings.ToLower(w)
	}
	return &FoldedSet{set: NewSet(folded...)}
}

// Contains reports whether word is in the set, ignoring case.
func (f *FoldedSet) Contains(word string) bool {
	if f == nil {
		return false
	}
	return f.set.Contains(strings.ToLower(word))
}

// Len returns the number of entries.
func (f *FoldedSet) Len() int {
	if f == nil {
		return 0
	}
	return f.set.Len()
}

// Func adapts a plain function to Lookup.
type Func func(word string) bool

// Contains calls f.
func (f Func) Contains(word string) bool {
	return f(word)
}

// Load reads one entry per line. Blank lines and lines starting with '#' are
// skipped.
func Load(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return words, nil
}

// LoadSet reads a case-sensitive set with Load.
func LoadSet(r io.Reader) (*Set, error) {
	words, err := Load(r)
	if err != nil {
		return nil, err
	}
	return NewSet(words...), nil
}

// LoadFoldedSet reads a case-insensitive set with Load.
func LoadFoldedSet(r io.Reader) (*FoldedSet, error) {
	words, err := Load(r)
	if err != nil {
		return nil, err
	}
	return NewFoldedSet(words...), nil
}

// IsEmpty reports whether l is nil or a known-empty set.
func IsEmpty(l Lookup) bool {
	switch v := l.(type) {
	case nil:
		return true
	case *Set:
		return v.Len() == 0
	case *FoldedSet:
		return v.Len() == 0
	default:
		return false
	}
}
