package chat

import (
	"regexp"
	"strings"
)

var (
	emailShape   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	emailInText  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	namePrefixes = regexp.MustCompile(`(?i)^(my name is|my name's|i'm|i am|call me|it's|this is)\s+`)
)

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailShape.MatchString(s)
}

// ExtractEmail finds an email address in free text such as
// "sure, it's jane@x.com". The candidate must still pass ValidEmail.
func ExtractEmail(text string) (string, bool) {
	candidate := strings.TrimSpace(text)
	if m := emailInText.FindString(candidate); m != "" {
		candidate = m
	}
	if !ValidEmail(candidate) {
		return "", false
	}
	return candidate, true
}

// ExtractName strips a leading introduction like "my name is" and trailing
// punctuation. Text that reduces to nothing is returned trimmed as-is.
func ExtractName(text string) string {
	trimmed := strings.TrimSpace(text)
	name := strings.TrimSpace(namePrefixes.ReplaceAllString(trimmed, ""))
	name = strings.TrimRight(name, ".!")
	if name == "" {
		return trimmed
	}
	return name
}

// matchOption returns the offered option equal to input, ignoring case and
// surrounding space.
func matchOption(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, opt := range options {
		if strings.EqualFold(input, opt) {
			return opt, true
		}
	}
	return "", false
}
