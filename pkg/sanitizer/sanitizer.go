// Package sanitizer normalizes untrusted free-text input before it is
// validated and persisted.
package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControlChars = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	reMultiSpace   = regexp.MustCompile(`[ \t]+`)

	reValidPhone = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)

	// Regions tried when a submitted phone number has no country prefix.
	defaultRegions = []string{"US", "GB", "IN"}
)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func stripControl(s string) string {
	return reControlChars.ReplaceAllString(s, " ")
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

// SanitizeName cleans a person or label name without changing its casing.
func SanitizeName(input string) string {
	p := Pipeline{
		stripControl,
		collapseSpaces,
		trimSpace,
	}
	return p.Apply(input)
}

// SanitizeMessage keeps newlines but removes other control characters.
func SanitizeMessage(input string) string {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = SanitizeName(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func SanitizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// SanitizePhone normalizes a phone number to E.164. Unparseable input comes
// back empty so validation can reject it with a field-level message.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if !reValidPhone.MatchString(phone) {
		return ""
	}

	for _, region := range defaultRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}

// SanitizeSlice applies a strategy to every element, dropping empties and
// duplicates while preserving order.
func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
