package report

import "strings"

// SanitizeFilename derives a safe, deterministic file name fragment:
// characters outside [A-Za-z0-9_- ] are stripped, then whitespace runs
// collapse to single hyphens.
func SanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == '-' || r == ' ':
			return r
		default:
			return -1
		}
	}, name)

	return strings.Join(strings.Fields(cleaned), "-")
}
