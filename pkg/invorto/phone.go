package invorto

import (
	"regexp"
	"strings"
)

var (
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneSeparators = regexp.MustCompile(`[\s\-()]`)
)

// ValidatePhoneNumber reports whether number looks like an international
// phone number: an optional leading '+', a first digit 1-9, and up to 15
// further digits, judged after stripping spaces, hyphens, and parentheses.
func ValidatePhoneNumber(number string) bool {
	return phonePattern.MatchString(phoneSeparators.ReplaceAllString(number, ""))
}

// FormatPhoneNumber normalizes number to a country-code-prefixed form.
// Precedence, after separator stripping: already '+'-prefixed stays as is; a
// leading '0' is replaced by countryCode; country-code digits followed by 10
// digits gain a '+'; a bare 10-digit number gains countryCode. Anything else
// is returned unchanged, best effort only.
func FormatPhoneNumber(number, countryCode string) string {
	cleaned := phoneSeparators.ReplaceAllString(number, "")

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "0") {
		return countryCode + cleaned[1:]
	}

	ccDigits := strings.TrimPrefix(countryCode, "+")
	if strings.HasPrefix(cleaned, ccDigits) && len(cleaned) == len(ccDigits)+10 {
		return "+" + cleaned
	}
	if len(cleaned) == 10 {
		return countryCode + cleaned
	}

	return number
}
