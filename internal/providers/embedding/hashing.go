package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const defaultDims = 256

// Hashing is a local bag-of-words embedder using signed feature hashing.
// It needs no network and is deterministic, so equal texts embed identically.
type Hashing struct {
	dims int
}

func NewHashing(dims int) *Hashing {
	if dims <= 0 {
		dims = defaultDims
	}
	return &Hashing{dims: dims}
}

func (h *Hashing) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dims)

	for _, tok := range tokenize(text) {
		f := fnv.New64a()
		f.Write([]byte(tok))
		sum := f.Sum64()

		idx := sum % uint64(h.dims)
		if sum>>63 == 0 {
			vec[idx]++
		} else {
			vec[idx]--
		}
	}

	normalize(vec)
	return vec, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
