package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codeninja55/go-radx/dicom/vr"
)

// SplitComponents splits a trimmed element value string into its backslash-
// separated components per the VR's rules, then trims padding from each
// component independently.
//
// LT, ST and UT never split: a literal backslash in their text is ordinary
// content, not a component separator. Every other string-bearing VR splits
// unconditionally on backslash, including when there is exactly one
// component.
func SplitComponents(v vr.VR, trimmed string) []string {
	if trimmed == "" {
		return []string{}
	}
	if v.IsUnsplittableText() {
		return []string{trimmed}
	}
	parts := strings.Split(trimmed, "\\")
	for i, p := range parts {
		parts[i] = strings.Trim(p, "\x00 ")
	}
	return parts
}

// ParseIntegerStrings parses the backslash-separated components of an IS
// value into int64s. Per the strict-parsing decision for this codec, any
// component that is not a valid signed decimal integer is an error, rather
// than being silently coerced to zero.
func ParseIntegerStrings(components []string) ([]int64, error) {
	values := make([]int64, len(components))
	for i, c := range components {
		trimmed := strings.TrimSpace(c)
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed IS component %q: %w", c, err)
		}
		values[i] = n
	}
	return values, nil
}

// ParseDecimalStrings parses the backslash-separated components of a DS
// value into float64s, strictly: a malformed component is an error.
func ParseDecimalStrings(components []string) ([]float64, error) {
	values := make([]float64, len(components))
	for i, c := range components {
		trimmed := strings.TrimSpace(c)
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed DS component %q: %w", c, err)
		}
		values[i] = f
	}
	return values, nil
}
