package scheme

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/leapstack-labs/phonet/pkg/core"
)

// Generator produces random words that satisfy a scheme's rules.
//
// Candidates are drawn uniformly with replacement from the any-class
// alphabet and rejected until one validates. There is no retry cap; use
// GenerateContext to bound a run externally.
type Generator struct {
	Scheme *Scheme
	// Rand is the random source. nil uses the global source.
	Rand *rand.Rand
	// Logger receives a debug record per generated word. nil discards.
	Logger *slog.Logger
}

// NewGenerator creates a generator using the global random source.
func NewGenerator(s *Scheme) *Generator {
	return &Generator{Scheme: s}
}

// Generate returns count valid words with lengths in [minLen, maxLen).
func (s *Scheme) Generate(count, minLen, maxLen int) ([]string, error) {
	return NewGenerator(s).Generate(context.Background(), count, minLen, maxLen)
}

// GenerateContext is Generate with cancellation checked between candidates.
func (s *Scheme) GenerateContext(ctx context.Context, count, minLen, maxLen int) ([]string, error) {
	return NewGenerator(s).Generate(ctx, count, minLen, maxLen)
}

// Generate returns count valid words with lengths in [minLen, maxLen).
// It returns ctx.Err() if the context ends first, along with the words
// generated so far.
func (g *Generator) Generate(ctx context.Context, count, minLen, maxLen int) ([]string, error) {
	if minLen < 0 || maxLen <= minLen {
		return nil, &core.Error{Kind: core.ErrInvalidLengthRange}
	}

	alphabet, err := g.Scheme.classes.AnyAlphabet()
	if err != nil {
		return nil, err
	}

	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	words := make([]string, 0, max(count, 0))
	for range count {
		length := minLen + g.intN(maxLen-minLen)

		attempts := 0
		for {
			if err := ctx.Err(); err != nil {
				return words, err
			}
			attempts++

			candidate := g.candidate(alphabet, length)
			if g.Scheme.Validate(candidate).IsValid() {
				logger.Debug("generated word", "word", candidate, "length", length, "attempts", attempts)
				words = append(words, candidate)
				break
			}
		}
	}

	return words, nil
}

func (g *Generator) candidate(alphabet []rune, length int) string {
	var sb strings.Builder
	for range length {
		sb.WriteRune(alphabet[g.intN(len(alphabet))])
	}
	return sb.String()
}

func (g *Generator) intN(n int) int {
	if g.Rand != nil {
		return g.Rand.IntN(n)
	}
	return rand.IntN(n)
}
