package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator mints the opaque identifiers used as public business keys for
// leagues, matches, and predictions.
type Generator interface {
	NewID() (string, error)
}

// idByteLength is 128 bits of entropy, rendered as 32 hex characters to fit
// the public_id columns.
const idByteLength = 16

// RandomGenerator draws IDs from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	var buf [idByteLength]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("draw id bytes: %w", err)
	}

	return hex.EncodeToString(buf[:]), nil
}
