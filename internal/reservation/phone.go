package reservation

import (
	"regexp"
	"strings"
)

// Accepted phone formats: +2519XXXXXXXX, 2519XXXXXXXX or 09XXXXXXXX.
var phonePattern = regexp.MustCompile(`^(?:\+2519\d{8}|2519\d{8}|09\d{8})$`)

// NormalizePhone strips spaces and hyphens and validates the result against
// the accepted formats. Returns the normalized number or ErrInvalidPhone.
func NormalizePhone(raw string) (string, error) {
	phone := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}
