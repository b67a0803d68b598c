package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSeats uppercases and trims seat codes, dropping empties.
func NormalizeSeats(arr []string) []string {
	out := make([]string, 0, len(arr))
	for _, s := range arr {
		x := strings.ToUpper(strings.TrimSpace(s))
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}

// HasDuplicates reports duplicate seat codes after normalization.
func HasDuplicates(arr []string) bool {
	seen := map[string]bool{}
	for _, v := range arr {
		k := strings.ToUpper(strings.TrimSpace(v))
		if k == "" {
			continue
		}
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}
