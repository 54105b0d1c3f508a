package registration

import "regexp"

// Format rules for email and password. Both are anchored full-string
// matches: a single disallowed character anywhere rejects the input.
var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Go's regexp has no lookaheads, so the password rule is split into
	// the anchored charset/length check plus explicit class counts.
	passwordCharset = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]{6,}$`)
)

// IsValidEmail reports whether s looks like local@domain.tld with a
// top-level domain of at least two letters.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword reports whether s is at least six characters from the
// allowed set and contains at least one lowercase letter, one uppercase
// letter, and two digits. The digits need not be adjacent.
func IsValidPassword(s string) bool {
	if !passwordCharset.MatchString(s) {
		return false
	}

	var lower, upper, digits int
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower++
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= '0' && r <= '9':
			digits++
		}
	}

	return lower >= 1 && upper >= 1 && digits >= 2
}
