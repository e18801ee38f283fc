package matrix

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion validates a semantic version triple ("1.2.0"). A leading
// "v" is tolerated on input; the canonical form without it is returned.
func ParseVersion(s string) (string, error) {
	v, err := semver.StrictNewVersion(trimV(s))
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v.String(), nil
}

// versionIncreases reports whether next is strictly greater than current.
// Both inputs must already be canonical (see ParseVersion).
func versionIncreases(current, next string) bool {
	cur, err := semver.StrictNewVersion(current)
	if err != nil {
		return false
	}
	nxt, err := semver.StrictNewVersion(next)
	if err != nil {
		return false
	}
	return nxt.GreaterThan(cur)
}

func trimV(s string) string {
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		return s[1:]
	}
	return s
}
