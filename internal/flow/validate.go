package flow

import (
	"regexp"
	"strings"
)

var (
	phoneJunk    = regexp.MustCompile(`[\s()-]`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

var skipWords = map[string]struct{}{
	"пропустить": {},
	"skip":       {},
	"no":         {},
	"нет":        {},
}

// normalizePhone strips whitespace, parentheses and hyphens, keeps an
// optional leading "+", and requires at least six digits. Anything
// shorter or non-numeric is rejected.
func normalizePhone(raw string) (string, bool) {
	cleaned := phoneJunk.ReplaceAllString(strings.TrimSpace(raw), "")
	digits := strings.TrimPrefix(cleaned, "+")
	if len(digits) < 6 {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	if strings.HasPrefix(cleaned, "+") {
		return "+" + digits, true
	}
	return digits, true
}

// isSkip reports whether the user explicitly skipped an optional step.
// Skipping is a valid answer, distinct from invalid input.
func isSkip(text string) bool {
	_, ok := skipWords[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func isValidEmail(text string) bool {
	return emailPattern.MatchString(text)
}
