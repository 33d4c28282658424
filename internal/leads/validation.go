package leads

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)
)

// ErrorMap maps an invalid field to the message shown next to it.
// A field absent from the map is valid.
type ErrorMap map[Field]string

// Validate checks every field independently and reports all failures at once.
func Validate(form LeadFormData) ErrorMap {
	errs := ErrorMap{}

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		errs[FieldName] = "Name is required"
	case utf8.RuneCountInString(name) < 2:
		errs[FieldName] = "Name must be at least 2 characters"
	}

	switch {
	case strings.TrimSpace(form.Email) == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(form.Email):
		errs[FieldEmail] = "Please enter a valid email address"
	}

	switch {
	case strings.TrimSpace(form.Phone) == "":
		errs[FieldPhone] = "Phone number is required"
	case !phonePattern.MatchString(stripPhoneFormatting(form.Phone)):
		errs[FieldPhone] = "Please enter a valid phone number"
	}

	if strings.TrimSpace(form.LeadSource) == "" {
		errs[FieldLeadSource] = "Lead source is required"
	}

	return errs
}

// Valid reports whether the form may be submitted.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// stripPhoneFormatting drops whitespace, hyphens and parentheses.
func stripPhoneFormatting(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, phone)
}
