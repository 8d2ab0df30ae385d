package composer

import (
	"strings"
	"unicode"
)

// ConvertConstraint rewrites a Composer version constraint into RPM syntax.
//
//   - A leading caret becomes ">= " (the implied upper bound is not emitted).
//   - A leading operator is separated from the version by exactly one space.
//   - Bare versions, and constraints without any digit such as "*" or
//     "dev-master", are returned unchanged.
func ConvertConstraint(raw string) string {
	c := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(c, "^"); ok {
		c = ">= " + rest
	}

	i := strings.IndexFunc(c, unicode.IsDigit)
	if i <= 0 {
		return c
	}
	op := strings.TrimSpace(c[:i])
	if op == "" {
		return c[i:]
	}
	return op + " " + c[i:]
}
