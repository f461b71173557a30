package textutil

import (
	"math"
	"reflect"
	"testing"
)

func TestFoldHeader(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Personal Rating", "personal rating", true},
		{"  Personal   RATING ", "Personal Rating", true},
		{"Watch\tDate", "watch date", true},
		// Precomposed and combining forms normalize to the same text.
		{"Café", "Café", true},
		{"Straße", "STRASSE", true},
		{"Watch Date", "WatchDate", false},
	}
	for _, tt := range tests {
		if got := EqualFold(tt.a, tt.b); got != tt.want {
			t.Errorf("EqualFold(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Marvel's Agents of S.H.I.E.L.D.")
	want := []string{"marvel", "s", "agents", "of", "s", "h", "i", "e", "l", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %q, want %q", got, want)
	}
	if NewFingerprint("  --  ") != nil {
		t.Fatal("expected nil fingerprint for punctuation only")
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := CosineSimilarity(nil, NewFingerprint("Lost")); got != 0 {
		t.Fatalf("nil fingerprint similarity = %v", got)
	}
	same := CosineSimilarity(NewFingerprint("Breaking Bad"), NewFingerprint("breaking  BAD"))
	if math.Abs(same-1) > 1e-9 {
		t.Fatalf("identical folded names similarity = %v, want 1", same)
	}
	if got := CosineSimilarity(NewFingerprint("xyz"), NewFingerprint("Lost")); got != 0 {
		t.Fatalf("disjoint similarity = %v, want 0", got)
	}
	typo := CosineSimilarity(NewFingerprint("Breakng Bad"), NewFingerprint("Breaking Bad"))
	if typo <= 0.5 || typo >= 1 {
		t.Fatalf("typo similarity = %v, want between 0.5 and 1", typo)
	}
}

func TestSuggest(t *testing.T) {
	shows := []string{"Breaking Bad", "Better Call Saul", "Lost", "The Wire"}

	got := Suggest("breakin bad", shows, 3, DefaultSuggestThreshold)
	if len(got) == 0 || got[0] != "Breaking Bad" {
		t.Fatalf("Suggest = %v, want Breaking Bad first", got)
	}
	if got := Suggest("Wire", shows, 1, DefaultSuggestThreshold); !reflect.DeepEqual(got, []string{"The Wire"}) {
		t.Fatalf("Suggest(Wire) = %v", got)
	}
	if got := Suggest("zzzz", shows, 3, DefaultSuggestThreshold); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
	if got := Suggest("Lost", shows, 0, 0); got != nil {
		t.Fatalf("limit 0 should return nil, got %v", got)
	}
}
