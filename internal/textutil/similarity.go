package textutil

import "sort"

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for gram, count := range a.grams {
		if other, ok := b.grams[gram]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// DefaultSuggestThreshold is the minimum similarity for a suggestion.
const DefaultSuggestThreshold = 0.3

// Suggest returns up to limit candidates whose similarity to query is at
// least threshold, best first. Equal scores keep candidate order.
func Suggest(query string, candidates []string, limit int, threshold float64) []string {
	q := NewFingerprint(query)
	if q == nil || limit <= 0 {
		return nil
	}
	type scored struct {
		name  string
		score float64
	}
	var matches []scored
	for _, candidate := range candidates {
		score := CosineSimilarity(q, NewFingerprint(candidate))
		if score >= threshold {
			matches = append(matches, scored{name: candidate, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
