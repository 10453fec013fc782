// Package runid names tournament runs. IDs are UUIDv7 values rendered as 26
// characters of Crockford base32, so they sort by creation time.
package runid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns a fresh run ID
func New() string {
	u, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system random source does
		panic("failed to generate run id: " + err.Error())
	}
	return Encode(u)
}

// Encode renders a UUID as a 26-character base32 string
func Encode(u uuid.UUID) string {
	result := make([]byte, 26)

	// 128 bits are emitted five at a time with two leading zero bits
	for i := 0; i < 26; i++ {
		bitOffset := i*5 - 2
		var value uint8
		for b := 0; b < 5; b++ {
			bit := bitOffset + b
			if bit < 0 {
				continue
			}
			value <<= 1
			value |= (u[bit/8] >> (7 - bit%8)) & 1
		}
		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks if a run ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("run ID must be exactly 26 characters, got %d", len(id))
	}

	// First character carries only three bits
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
