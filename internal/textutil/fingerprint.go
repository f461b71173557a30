package textutil

import (
	"math"
	"strings"
	"unicode"
)

// Fingerprint is a character trigram frequency vector.
type Fingerprint struct {
	grams map[string]float64
	norm  float64
}

// NewFingerprint builds a fingerprint from the folded words of text.
// Returns nil if the text has no letters or digits.
func NewFingerprint(text string) *Fingerprint {
	words := Tokenize(text)
	if len(words) == 0 {
		return nil
	}
	counts := make(map[string]float64)
	for _, word := range words {
		for _, gram := range trigrams(word) {
			counts[gram]++
		}
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{grams: counts, norm: math.Sqrt(norm)}
}

// Tokenize folds text and splits it into words of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(FoldHeader(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// trigrams pads word with a space on each side so short words and word
// boundaries still contribute.
func trigrams(word string) []string {
	runes := []rune(" " + word + " ")
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}

// Size returns the number of distinct trigrams.
func (f *Fingerprint) Size() int {
	if f == nil {
		return 0
	}
	return len(f.grams)
}
