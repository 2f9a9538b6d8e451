package lemma

import (
	"strings"
	"sync"
)

const consonants = "bcdfghjklmnpqrstvwxyz"

// exceptions are words that look inflected but must never be reduced.
var exceptions = map[string]struct{}{
	// -ing nouns and adjectives
	"being": {}, "thing": {}, "something": {}, "anything": {}, "nothing": {},
	"everything": {}, "king": {}, "ring": {}, "wing": {}, "string": {},
	"spring": {}, "morning": {}, "evening": {}, "wedding": {}, "building": {},
	"meeting": {}, "feeling": {}, "ceiling": {}, "clothing": {}, "during": {},
	"bring": {}, "sing": {}, "sting": {}, "swing": {}, "cling": {}, "fling": {},

	// -ed adjectives and nouns
	"red": {}, "bed": {}, "fed": {}, "led": {}, "shed": {}, "wed": {},
	"bled": {}, "fled": {}, "sled": {}, "hundred": {}, "sacred": {},
	"wicked": {}, "naked": {}, "wretched": {}, "blessed": {}, "rugged": {},
	"aged": {}, "learned": {}, "beloved": {}, "crooked": {}, "ragged": {},

	// -s/-es words that are not plurals
	"this": {}, "yes": {}, "his": {}, "bus": {}, "gas": {}, "plus": {},
	"minus": {}, "bonus": {}, "pass": {}, "class": {}, "glass": {},
	"mass": {}, "boss": {}, "loss": {}, "cross": {}, "moss": {}, "gross": {},
	"address": {}, "process": {}, "access": {}, "success": {}, "express": {},
	"impress": {}, "press": {}, "business": {}, "witness": {}, "fitness": {},
	"illness": {}, "darkness": {}, "happiness": {}, "series": {},
	"species": {}, "analysis": {}, "basis": {}, "crisis": {}, "thesis": {},
	"always": {}, "perhaps": {}, "unless": {}, "across": {}, "canvas": {},
	"focus": {}, "status": {}, "genius": {}, "radius": {}, "virus": {},
	"campus": {}, "census": {}, "chorus": {},
}

// Normalizer reduces inflected words to headwords. Results are cached
// per instance so repeated lookups of the same word are free. The cache
// is append-only and safe for concurrent use.
type Normalizer struct {
	mu    sync.RWMutex
	cache map[string]string
}

// NewNormalizer creates a Normalizer with an empty cache.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		cache: make(map[string]string),
	}
}

// Normalize returns the dictionary headword for word. The input is
// lowercased and trimmed first; if no rule applies, the lowercase form
// is returned unchanged.
func (n *Normalizer) Normalize(word string) string {
	lower := strings.ToLower(strings.TrimSpace(word))

	n.mu.RLock()
	cached, ok := n.cache[lower]
	n.mu.RUnlock()
	if ok {
		return cached
	}

	result := reduce(lower)

	n.mu.Lock()
	n.cache[lower] = result
	n.mu.Unlock()

	return result
}

// CacheSize reports the number of cached entries.
func (n *Normalizer) CacheSize() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.cache)
}

// reduce applies the suffix rules in priority order.
func reduce(lower string) string {
	if _, ok := exceptions[lower]; ok {
		return lower
	}
	if len(lower) < 4 {
		return lower
	}

	// -ing: strip suffix, undo consonant doubling (running -> run)
	if strings.HasSuffix(lower, "ing") && len(lower) > 5 {
		base := lower[:len(lower)-3]
		if hasDoubledConsonant(base) && !protectedDoubleEnding(base, "ll", "ss", "ff", "zz") {
			base = base[:len(base)-1]
		}
		return base
	}

	// -ed: past tense
	if strings.HasSuffix(lower, "ed") && len(lower) > 4 {
		// studied -> study
		if strings.HasSuffix(lower, "ied") && len(lower) > 5 {
			return lower[:len(lower)-3] + "y"
		}
		before := lower[:len(lower)-2]
		// agreed -> agre: a base already ending in e keeps it
		if strings.HasSuffix(before, "e") {
			return before
		}
		// stopped -> stop
		if hasDoubledConsonant(before) && !protectedDoubleEnding(before, "ee", "oo") {
			return before[:len(before)-1]
		}
		return before
	}

	// -ies: stories -> story
	if strings.HasSuffix(lower, "ies") && len(lower) > 4 {
		return lower[:len(lower)-3] + "y"
	}

	// -ses/-xes/-zes/-ches/-shes: boxes -> box, watches -> watch
	if strings.HasSuffix(lower, "ses") || strings.HasSuffix(lower, "xes") ||
		strings.HasSuffix(lower, "zes") || strings.HasSuffix(lower, "ches") ||
		strings.HasSuffix(lower, "shes") {
		return lower[:len(lower)-2]
	}

	// -oes: potatoes -> potato
	if strings.HasSuffix(lower, "oes") && len(lower) > 4 {
		return lower[:len(lower)-2]
	}

	// plain -s, but never -ss or -us
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") &&
		!strings.HasSuffix(lower, "us") {
		base := lower[:len(lower)-1]
		if len(base) < 3 {
			return lower
		}
		return base
	}

	return lower
}

// hasDoubledConsonant reports whether s ends in the same consonant twice.
func hasDoubledConsonant(s string) bool {
	if len(s) < 2 {
		return false
	}
	last := s[len(s)-1]
	return last == s[len(s)-2] && strings.ContainsRune(consonants, rune(last))
}

// protectedDoubleEnding reports whether s ends in one of the given
// two-letter sequences.
func protectedDoubleEnding(s string, endings ...string) bool {
	for _, e := range endings {
		if strings.HasSuffix(s, e) {
			return true
		}
	}
	return false
}
