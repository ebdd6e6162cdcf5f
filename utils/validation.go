// utils/validation.go
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := DigitsOnly(phone)
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// DigitsOnly strips formatting characters from a phone number, keeping a
// leading + if present.
func DigitsOnly(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, phone)
	return cleaned
}

// FormatPhoneDisplay renders a 10-digit US number as (555) 123-4567. Anything
// else is returned as-is.
func FormatPhoneDisplay(digits string) string {
	d := strings.TrimPrefix(DigitsOnly(digits), "+1")
	if len(d) != 10 {
		return digits
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}

// ValidateEmail is a light shape check; real verification is the client's job.
func ValidateEmail(email string) bool {
	regex := `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	match, _ := regexp.MatchString(regex, email)
	return match
}
