package quiz

import (
	"errors"
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestGenerateDefaultBank(t *testing.T) {
	bank := DefaultBank()
	rounds, err := NewGenerator(bank, testRNG()).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(rounds) != len(bank.Phrases) {
		t.Fatalf("got %d rounds, want %d", len(rounds), len(bank.Phrases))
	}

	for i, round := range rounds {
		phrase := bank.Phrases[i]
		if round.Text != phrase.Text {
			t.Errorf("round %d: text %q, want %q (prompt order must hold)", i, round.Text, phrase.Text)
		}
		if round.CorrectConnector != phrase.Correct {
			t.Errorf("round %d: correct %q, want %q", i, round.CorrectConnector, phrase.Correct)
		}
		if round.ID == "" {
			t.Errorf("round %d: empty id", i)
		}
		if len(round.Options) != OptionCount {
			t.Fatalf("round %d: %d options, want %d", i, len(round.Options), OptionCount)
		}

		pool := make(map[string]bool)
		for _, c := range bank.Connectives[phrase.Category] {
			pool[c] = true
		}
		seen := make(map[string]bool)
		hasCorrect := false
		for _, option := range round.Options {
			if seen[option] {
				t.Errorf("round %d: duplicate option %q", i, option)
			}
			seen[option] = true
			if !pool[option] {
				t.Errorf("round %d: option %q is not in category %q", i, option, phrase.Category)
			}
			if option == phrase.Correct {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			t.Errorf("round %d: options %v do not include the correct connector", i, round.Options)
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	bank := DefaultBank()
	first, err := NewGenerator(bank, rand.New(rand.NewSource(7))).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := NewGenerator(bank, rand.New(rand.NewSource(7))).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range first {
		for j := range first[i].Options {
			if first[i].Options[j] != second[i].Options[j] {
				t.Fatalf("round %d: option order differs between identically seeded runs", i)
			}
		}
	}
}

func TestGenerateThinCategory(t *testing.T) {
	bank := &Bank{
		Connectives: map[string][]string{
			"causa": {"porque", "pois", "logo"}, // only two wrong options
		},
		Phrases: []Phrase{
			{Text: "Choveu, __ fiquei em casa.", Category: "causa", Correct: "porque"},
		},
	}
	_, err := NewGenerator(bank, testRNG()).Generate()
	if !errors.Is(err, ErrNotEnoughOptions) {
		t.Fatalf("err = %v, want ErrNotEnoughOptions", err)
	}
}

func TestGenerateCorrectNotInPool(t *testing.T) {
	bank := &Bank{
		Connectives: map[string][]string{
			"causa": {"porque", "pois", "logo", "portanto", "por isso"},
		},
		Phrases: []Phrase{
			{Text: "Estudei, __ passei.", Category: "causa", Correct: "mas"},
		},
	}
	_, err := NewGenerator(bank, testRNG()).Generate()
	if err == nil {
		t.Fatal("expected an error for a correct connector outside its category pool")
	}
	if errors.Is(err, ErrNotEnoughOptions) {
		t.Fatalf("err = %v, want a distinct membership error", err)
	}
}
