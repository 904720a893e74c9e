// Package pathindex parses the numeric index literals that appear in
// unquoted names, bracket contents, and slice fields of a JSONPath
// expression: an optional leading '-' followed by one or more decimal
// digits, with no surrounding whitespace tolerated.
package pathindex

import "math"

// Parse decodes s as an index magnitude and sign. It reports ok=false for
// an empty string, a bare "-", any non-digit character, or a magnitude
// that overflows uint64.
func Parse(s string) (magnitude uint64, positive bool, ok bool) {
	if s == "" {
		return 0, false, false
	}
	positive = true
	i := 0
	if s[0] == '-' {
		positive = false
		i = 1
	}
	if i >= len(s) {
		return 0, false, false
	}
	var n uint64
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false, false
		}
		d := uint64(c - '0')
		if n > (math.MaxUint64-d)/10 {
			return 0, false, false
		}
		n = n*10 + d
	}
	return n, positive, true
}

// Resolve turns a parsed (magnitude, positive) pair into an absolute index
// against a collection of the given size, treating a negative magnitude as
// counting back from the end ("size - n"). It reports ok=false if the
// resolved index falls outside [0, size).
func Resolve(magnitude uint64, positive bool, size int) (index int, ok bool) {
	var idx int64
	if positive {
		if magnitude > math.MaxInt64 {
			return 0, false
		}
		idx = int64(magnitude)
	} else {
		if magnitude > math.MaxInt64 {
			return 0, false
		}
		idx = int64(size) - int64(magnitude)
	}
	if idx < 0 || idx >= int64(size) {
		return 0, false
	}
	return int(idx), true
}
