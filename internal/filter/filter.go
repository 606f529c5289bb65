// Package filter selects extended attributes by name. Patterns use
// path.Match syntax and are matched against the complete attribute name;
// since names never contain '/', a '*' also spans the '.' separators, so
// "user.*" selects the whole user namespace.
package filter

import (
	"path"
	"strings"

	"github.com/exattr/exattr/internal/errors"
)

// ErrBadName is returned when Match is called with an empty name.
var ErrBadName = errors.New("filter.Match: attribute name is empty")

// Match reports whether name matches pattern. The empty pattern matches
// everything, an empty name returns ErrBadName. A malformed pattern returns
// path.ErrBadPattern.
func Match(pattern, name string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	if name == "" {
		return false, ErrBadName
	}

	matched, err := path.Match(pattern, name)
	if err != nil {
		return false, errors.Wrap(err, "Match")
	}
	return matched, nil
}

// List reports whether name matches one of patterns. Empty patterns are
// ignored, so an empty list matches nothing.
func List(patterns []string, name string) (bool, error) {
	for _, pat := range patterns {
		if pat == "" {
			continue
		}

		matched, err := Match(pat, name)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// InvalidPatternError is returned by ValidatePatterns.
type InvalidPatternError struct {
	InvalidPatterns []string
}

func (e *InvalidPatternError) Error() string {
	return "invalid pattern(s) provided:\n" + strings.Join(e.InvalidPatterns, "\n")
}

// ValidatePatterns returns an *InvalidPatternError listing all malformed
// patterns, or nil.
func ValidatePatterns(patterns []string) error {
	var invalid []string
	for _, pat := range patterns {
		if _, err := path.Match(pat, "x"); err != nil {
			invalid = append(invalid, pat)
		}
	}

	if len(invalid) > 0 {
		return &InvalidPatternError{InvalidPatterns: invalid}
	}
	return nil
}
