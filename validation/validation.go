// Package validation holds the per-entity input validators. Each validator
// is a pure function over the bound request payload and returns the
// field-to-message error map plus a validity flag; handlers reply 400 with
// the map as-is when the flag is false.
package validation

import "strings"

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
