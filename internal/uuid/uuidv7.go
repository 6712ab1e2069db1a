// Package uuid issues the time-ordered identifiers used as primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. UUIDv7 ids sort by creation time, which
// keeps insertion order stable for rows sharing a ledger date.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Entropy failure: fall back to a random v4 id.
		return googleuuid.NewString()
	}
	return id.String()
}

// Parse returns the canonical lower-case form of s.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	return googleuuid.Validate(s) == nil
}
