// Package services contains the curation pipeline business logic.
package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DateLayout is the fixed-width partition date format embedded in keys.
	// Zero-padded ISO dates make lexical comparison equivalent to date
	// comparison.
	DateLayout = "2006-01-02"

	// TimestampLayout is the second-precision UTC timestamp format used on
	// approval fields.
	TimestampLayout = "2006-01-02T15:04:05Z"

	// JSONSuffix is the object suffix every entry key carries.
	JSONSuffix = ".json"

	// entryIDLen is the number of hex characters in a minted entry id.
	entryIDLen = 10
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// NewEntryID mints an opaque unique token for a fresh entry key.
// Collisions are not otherwise checked; 10 hex chars keep the odds remote
// for a single-reviewer corpus.
func NewEntryID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return id[:entryIDLen]
}

// MakeKey joins a storage key from its three segments:
// <prefix>/<YYYY-MM-DD>/<id>.json.
func MakeKey(prefix, date, id string) string {
	return prefix + "/" + date + "/" + id + JSONSuffix
}

// ExtractDate returns the partition date embedded in a key, or "" when the
// key has fewer than three segments. It never fails; malformed keys simply
// yield no date and fall out of any date filter.
func ExtractDate(key string) string {
	parts := strings.Split(key, "/")
	if len(parts) >= 3 {
		return parts[1]
	}
	return ""
}

// DeriveCuratedKey re-parents a raw key onto the curated prefix, preserving
// the date partition and leaf filename. A malformed or absent raw key falls
// back to a fresh key under today's UTC date.
func DeriveCuratedKey(rawKey, curatedPrefix string) string {
	parts := strings.SplitN(rawKey, "/", 3)
	if len(parts) >= 3 {
		return curatedPrefix + "/" + parts[1] + "/" + parts[2]
	}
	day := timeNow().UTC().Format(DateLayout)
	return MakeKey(curatedPrefix, day, NewEntryID())
}
