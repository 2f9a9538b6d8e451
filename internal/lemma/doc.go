// Package lemma reduces inflected English words to their dictionary
// headword using suffix rules. It is a heuristic, not a dictionary
// lookup: regular -ing/-ed/-s inflections are handled, irregular verbs
// are not.
package lemma
