// Package pyver models the release-segment versions ("1.2.10") carried by the
// `__version__` marker, and the version specifiers used by python-requires.
package pyver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version is a dot-separated sequence of numeric release segments.
type Version struct {
	Segments []int
}

// errInvalidVersion is returned when a string is not a release-segment version.
var errInvalidVersion = errors.New("invalid version format")

// maxVersionLength bounds the input accepted by Parse.
const maxVersionLength = 128

// BumpByLabelFunc defaults to BumpByLabel and can be overridden in tests.
var BumpByLabelFunc = BumpByLabel

// Parse parses a release-segment version such as "1", "1.2" or "1.2.10".
//
// Returns errInvalidVersion (wrapped) when:
//   - the input exceeds maxVersionLength
//   - a segment is empty ("1..2", ".1", "1.")
//   - a segment is not made of ASCII digits
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Version{}, fmt.Errorf("%w: empty version", errInvalidVersion)
	}
	if len(trimmed) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: version string exceeds maximum length of %d", errInvalidVersion, maxVersionLength)
	}

	parts := strings.Split(trimmed, ".")
	segments := make([]int, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			return Version{}, fmt.Errorf("%w: empty segment %d in %q", errInvalidVersion, i+1, trimmed)
		}
		if !isAllDigits(p) {
			return Version{}, fmt.Errorf("%w: segment %q is not numeric", errInvalidVersion, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %s", errInvalidVersion, err.Error())
		}
		segments = append(segments, n)
	}
	return Version{Segments: segments}, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsInvalid reports whether err was caused by a malformed version string.
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalidVersion)
}

// String renders the version back to its dotted form.
func (v Version) String() string {
	var sb strings.Builder
	sb.Grow(len(v.Segments) * 3)
	for i, s := range v.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(s))
	}
	return sb.String()
}

// segment returns the i-th segment, treating missing trailing segments as zero.
func (v Version) segment(i int) int {
	if i < len(v.Segments) {
		return v.Segments[i]
	}
	return 0
}

// Compare returns -1, 0 or +1. "1.0" and "1.0.0" compare equal.
func (v Version) Compare(other Version) int {
	n := max(len(v.Segments), len(other.Segments))
	for i := 0; i < n; i++ {
		if c := compareInt(v.segment(i), other.segment(i)); c != 0 {
			return c
		}
	}
	return 0
}

// BumpByLabel bumps the version using an explicit label.
//
// Supported labels:
//   - "patch": 1.2.3 -> 1.2.4
//   - "minor": 1.2.3 -> 1.3.0
//   - "major": 1.2.3 -> 2.0.0
//
// Versions with fewer than three segments are padded first ("1.2" -> "1.2.1"
// for patch). Segments beyond the third are dropped.
func BumpByLabel(v Version, label string) (Version, error) {
	major, minor, patch := v.segment(0), v.segment(1), v.segment(2)
	switch label {
	case "patch":
		return Version{Segments: []int{major, minor, patch + 1}}, nil
	case "minor":
		return Version{Segments: []int{major, minor + 1, 0}}, nil
	case "major":
		return Version{Segments: []int{major + 1, 0, 0}}, nil
	default:
		return Version{}, fmt.Errorf("invalid bump label: %s", label)
	}
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
