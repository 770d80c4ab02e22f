package session

import (
	"strings"

	"golang.org/x/text/cases"
)

// Grade reports whether answer matches expected after trimming surrounding
// whitespace and case folding both sides. Exact match only.
func Grade(answer, expected string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(answer)) == fold.String(strings.TrimSpace(expected))
}
