package runner

import "strings"

// EllipsisMarker is the wildcard token in expected output. With ellipsis
// matching enabled it stands in for any substring of the actual output.
const EllipsisMarker = "..."

// Match compares expected output against actual output.
//
// Without ellipsis matching, or when the expected text carries no marker,
// the comparison is exact string equality. With ellipsis matching, the
// expected text is split on the marker and the fragments must appear in
// the actual output in order, the first anchored at the start and the
// last at the end.
func Match(expected, actual string, ellipsis bool) bool {
	if !ellipsis || !strings.Contains(expected, EllipsisMarker) {
		return expected == actual
	}

	fragments := strings.Split(expected, EllipsisMarker)

	first := fragments[0]
	if !strings.HasPrefix(actual, first) {
		return false
	}
	pos := len(first)

	for _, fragment := range fragments[1 : len(fragments)-1] {
		if fragment == "" {
			continue
		}
		idx := strings.Index(actual[pos:], fragment)
		if idx < 0 {
			return false
		}
		pos += idx + len(fragment)
	}

	last := fragments[len(fragments)-1]
	if last == "" {
		return true
	}
	return strings.HasSuffix(actual, last) && len(actual)-len(last) >= pos
}
