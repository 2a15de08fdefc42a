package ofxconnect

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strings"
)

// TokenGenerator produces random identifiers drawn from [0-9a-z].
type TokenGenerator interface {
	Generate(length int) (string, error)
}

type randomTokenGenerator struct {
	source io.Reader
}

// NewTokenGenerator returns a TokenGenerator reading from crypto/rand.
func NewTokenGenerator() TokenGenerator {
	return &randomTokenGenerator{source: rand.Reader}
}

// NewTokenGeneratorFromReader returns a TokenGenerator reading entropy from r.
// r must be safe for concurrent use if the generator is shared.
func NewTokenGeneratorFromReader(r io.Reader) TokenGenerator {
	return &randomTokenGenerator{source: r}
}

// Generate returns exactly length base-36 characters. A failing source yields an
// EntropyError; there is no fallback to a weaker source.
func (g *randomTokenGenerator) Generate(length int) (string, error) {
	if length < 1 {
		return "", errors.New("error - token length must be positive")
	}
	// Two bytes per character leaves far more entropy than the 5.17 bits each
	// base-36 digit needs, so the trailing digits are uniform.
	buf := make([]byte, 2*length)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", &EntropyError{Err: err}
	}
	s := new(big.Int).SetBytes(buf).Text(36)
	if len(s) < length {
		s = strings.Repeat("0", length-len(s)) + s
	}
	return s[len(s)-length:], nil
}
