package scoring

import "sort"

// TermSet is an unordered set of normalized terms.
type TermSet map[string]struct{}

func NewTermSet(terms ...string) TermSet {
	s := make(TermSet, len(terms))
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

func (s TermSet) Add(term string) {
	if term == "" {
		return
	}
	s[term] = struct{}{}
}

func (s TermSet) AddAll(other TermSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

func (s TermSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

func (s TermSet) Len() int {
	return len(s)
}

// Sorted returns the terms in ascending order. The result is never nil so it
// serializes as an empty JSON array.
func (s TermSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
