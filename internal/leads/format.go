package leads

import "strings"

// FormatPhoneNumber renders a 10-digit number as (DDD) DDD-DDDD.
// Anything else comes back exactly as given.
func FormatPhoneNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 10 {
		return raw
	}
	return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:]
}
