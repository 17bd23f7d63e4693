// Package utils holds tiny helpers shared across layers without pulling
// in any domain types.
package utils

import "strconv"

// AtoiDefault parses s as a base-10 integer and returns def when the
// parse fails. Input is taken verbatim, so " 42" and "42x" both fall
// back. The handlers use it to read ?page= and ?page_size= without
// turning a malformed value into a request error.
func AtoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
