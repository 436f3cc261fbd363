package encoder

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

const (
	DefaultHashingDimensions = 1024

	bigramWeight = 0.5
)

// stopwords are dropped before hashing unless a text consists only of them.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "with": {}, "by": {}, "from": {}, "about": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "am": {}, "do": {},
	"does": {}, "did": {}, "have": {}, "has": {}, "had": {}, "can": {}, "could": {}, "will": {},
	"would": {}, "should": {}, "may": {}, "might": {}, "i": {}, "me": {}, "my": {}, "you": {},
	"your": {}, "we": {}, "our": {}, "it": {}, "its": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "what": {}, "which": {}, "who": {}, "how": {}, "when": {}, "where": {}, "why": {},
	"s": {}, "t": {}, "there": {}, "any": {}, "some": {}, "please": {}, "under": {}, "over": {},
}

// Hashing is a local, dependency-free encoder. Each text becomes a bag of
// lowercase word unigrams and bigrams, feature-hashed with xxhash into a
// signed vector of fixed length and L2-normalized. Texts sharing content
// words score high; unrelated texts score near zero.
type Hashing struct {
	dims int
}

var _ Encoder = (*Hashing)(nil)

// NewHashing creates a hashing encoder. dims <= 0 selects DefaultHashingDimensions.
func NewHashing(dims int) *Hashing {
	if dims <= 0 {
		dims = DefaultHashingDimensions
	}
	return &Hashing{dims: dims}
}

func (h *Hashing) Identity() string {
	return fmt.Sprintf("hashing:v1:%d", h.dims)
}

func (h *Hashing) Dimensions() int {
	return h.dims
}

func (h *Hashing) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := validateInputs(texts); err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, wrapBackend("hashing", err)
		}
		vec, err := h.encode(text)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %w", ErrEncoding, i, err)
		}
		out[i] = vec
	}
	return out, nil
}

func (h *Hashing) encode(text string) ([]float32, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	acc := make([]float64, h.dims)
	for i, tok := range tokens {
		h.add(acc, tok, 1)
		if i > 0 {
			h.add(acc, tokens[i-1]+" "+tok, bigramWeight)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	if norm == 0 {
		return nil, ErrNoTokens
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, h.dims)
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec, nil
}

func (h *Hashing) add(acc []float64, feature string, weight float64) {
	sum := xxhash.Sum64String(feature)
	idx := sum % uint64(h.dims)
	if sum>>63 == 1 {
		weight = -weight
	}
	acc[idx] += weight
}

// tokenize lowercases text and splits it on anything that is not a letter or
// digit. Stopwords are removed unless nothing else remains.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	content := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopwords[w]; !stop {
			content = append(content, w)
		}
	}
	if len(content) == 0 {
		return words
	}
	return content
}
