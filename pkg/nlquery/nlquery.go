// Package nlquery translates free-text queries into structured filter sets.
// It is a deliberately narrow heuristic matcher, not a language parser: an
// ordered list of independent rules scans the lowercased query and each
// matching rule contributes fields to one accumulating filter set.
package nlquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/strandhq/strand/pkg/filter"
)

// ParseError is returned when a query matches none of the known patterns.
type ParseError struct {
	Query string
}

func (e ParseError) Error() string {
	return "could not interpret query: " + e.Query
}

// rule inspects the lowercased query and may set fields on the accumulating
// set. Rules are independent: every rule runs regardless of what earlier
// rules matched. Returns true if the rule contributed anything.
type rule func(q string, f *filter.Set) bool

var (
	longerThanRe = regexp.MustCompile(`longer than (\d+)`)
	letterRe     = regexp.MustCompile(`letter ([a-z])\b`)
)

// rules is the ordered matcher list. Order matters only for the vowel
// fallback, which must run after the explicit letter rule so it never
// overwrites a more specific match.
var rules = []rule{
	matchPalindrome,
	matchSingleWord,
	matchLongerThan,
	matchLetter,
	matchVowelFallback,
}

// Translate converts a free-text query into a filter set. Returns ParseError
// if no rule matches, or filter.ConflictingFiltersError if the parsed set is
// unsatisfiable.
func Translate(query string) (filter.Set, error) {
	q := strings.ToLower(query)

	var f filter.Set
	matched := false
	for _, r := range rules {
		if r(q, &f) {
			matched = true
		}
	}

	if !matched {
		return filter.Set{}, ParseError{Query: query}
	}

	if err := f.Validate(); err != nil {
		return filter.Set{}, err
	}

	return f, nil
}

// matchPalindrome recognizes "palindrome", "palindromic", etc.
func matchPalindrome(q string, f *filter.Set) bool {
	if !strings.Contains(q, "palindrom") {
		return false
	}

	t := true
	f.IsPalindrome = &t
	return true
}

// matchSingleWord recognizes "single word", "single-word", and "one word".
func matchSingleWord(q string, f *filter.Set) bool {
	if !strings.Contains(q, "single word") &&
		!strings.Contains(q, "single-word") &&
		!strings.Contains(q, "one word") {
		return false
	}

	one := 1
	f.WordCount = &one
	return true
}

// matchLongerThan recognizes "longer than <N>" as a strict lower bound,
// stored as the inclusive min_length N+1.
func matchLongerThan(q string, f *filter.Set) bool {
	m := longerThanRe.FindStringSubmatch(q)
	if m == nil {
		return false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		// \d+ can still overflow int
		return false
	}

	bound := n + 1
	f.MinLength = &bound
	return true
}

// matchLetter recognizes "letter <c>" for a single letter.
func matchLetter(q string, f *filter.Set) bool {
	m := letterRe.FindStringSubmatch(q)
	if m == nil {
		return false
	}

	f.ContainsCharacter = &m[1]
	return true
}

// matchVowelFallback defaults contains_character to "a" for queries that
// mention vowels without naming a letter. An explicit letter match takes
// precedence, so this only fires when the field is still unset.
func matchVowelFallback(q string, f *filter.Set) bool {
	if f.ContainsCharacter != nil || !strings.Contains(q, "vowel") {
		return false
	}

	a := "a"
	f.ContainsCharacter = &a
	return true
}
