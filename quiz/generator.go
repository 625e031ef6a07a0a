// quiz/generator.go
package quiz

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// OptionCount is the number of choices presented per round: the correct
// connector plus three distinct wrong ones from the same category.
const OptionCount = 4

var ErrNotEnoughOptions = errors.New("category has too few connectives to build an option set")

// Round is one prompt instance within a session. CorrectConnector is never
// serialized to clients; answers are judged server-side.
type Round struct {
	ID               string   `json:"id"`
	Text             string   `json:"text"`
	Options          []string `json:"options"`
	Category         string   `json:"category"`
	CorrectConnector string   `json:"-"`
}

// Generator builds round sequences from a bank. The rand source is injected
// so tests get deterministic option sets.
type Generator struct {
	bank *Bank
	rng  *rand.Rand
}

func NewGenerator(bank *Bank, rng *rand.Rand) *Generator {
	return &Generator{bank: bank, rng: rng}
}

// Generate builds the full round sequence for one session. Prompt order is
// preserved as round order; option order is shuffled per round. Any phrase
// whose category cannot supply three distinct wrong options fails the whole
// generation, before the first round is ever played.
func (g *Generator) Generate() ([]Round, error) {
	rounds := make([]Round, 0, len(g.bank.Phrases))
	for _, phrase := range g.bank.Phrases {
		options, err := g.buildOptions(phrase)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, Round{
			ID:               uuid.New().String(),
			Text:             phrase.Text,
			Options:          options,
			Category:         phrase.Category,
			CorrectConnector: phrase.Correct,
		})
	}
	return rounds, nil
}

func (g *Generator) buildOptions(phrase Phrase) ([]string, error) {
	pool := g.bank.Connectives[phrase.Category]

	found := false
	wrong := make([]string, 0, len(pool))
	for _, connective := range pool {
		if connective == phrase.Correct {
			found = true
			continue
		}
		wrong = append(wrong, connective)
	}
	if !found {
		return nil, fmt.Errorf("connector %q is not in category %q", phrase.Correct, phrase.Category)
	}
	if len(wrong) < OptionCount-1 {
		return nil, fmt.Errorf("%w: %q has %d wrong options, need %d",
			ErrNotEnoughOptions, phrase.Category, len(wrong), OptionCount-1)
	}

	// Fisher-Yates both times: once to pick the wrong options uniformly,
	// once so the correct connector's position is uniform.
	g.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })

	options := make([]string, 0, OptionCount)
	options = append(options, phrase.Correct)
	options = append(options, wrong[:OptionCount-1]...)
	g.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return options, nil
}
