// Package analyze computes the derived properties of a submitted string.
// Everything here is a pure function of the input value: no I/O, no clock,
// no randomness.
package analyze

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Properties is the full derived property set for a string value.
type Properties struct {
	// Length is the number of Unicode code points in the value.
	Length int `json:"length"`

	// IsPalindrome reports whether the value reads the same forwards and
	// backwards under case-insensitive comparison. The empty string counts.
	IsPalindrome bool `json:"is_palindrome"`

	// UniqueCharacters is the number of distinct code points, case-sensitive.
	UniqueCharacters int `json:"unique_characters"`

	// WordCount is the number of whitespace-delimited non-empty tokens.
	WordCount int `json:"word_count"`

	// SHA256Hash is the lowercase hex digest of the value's exact UTF-8
	// bytes. It doubles as the record's content-addressed id.
	SHA256Hash string `json:"sha256_hash"`

	// CharacterFrequencyMap maps each distinct character (exact,
	// case-sensitive) to its occurrence count. Counts sum to Length.
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// Identity computes the content-addressed identifier for a value: the
// SHA-256 hex digest of its exact UTF-8 bytes. The value is hashed untouched
// (no lowercasing, no trimming) so case and whitespace variants are distinct
// identities. Creation and lookup-by-value both go through this function.
func Identity(value string) string {
	h := sha256.Sum256([]byte(value))
	return hex.EncodeToString(h[:])
}

// Analyze computes the property set for a value. Total over all string
// inputs, including the empty string.
func Analyze(value string) Properties {
	runes := []rune(value)

	freq := make(map[string]int, len(runes))
	for _, r := range runes {
		freq[string(r)]++
	}

	return Properties{
		Length:                utf8.RuneCountInString(value),
		IsPalindrome:          isPalindrome(value),
		UniqueCharacters:      len(freq),
		WordCount:             len(strings.Fields(value)),
		SHA256Hash:            Identity(value),
		CharacterFrequencyMap: freq,
	}
}

// isPalindrome compares code points from both ends after lowercasing the
// whole value, so "Racecar" qualifies.
func isPalindrome(value string) bool {
	runes := []rune(strings.ToLower(value))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}
