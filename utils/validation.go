// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	e164Regex       = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	phoneCharsRegex = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterRegex     = regexp.MustCompile(`^[\p{L}\s]+$`)
)

// CleanPhone strips the separators people type into phone numbers
func CleanPhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return r.Replace(phone)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Allows + prefix followed by 7-15 digits
	return e164Regex.MatchString(CleanPhone(phone))
}

// PhoneHasValidChars reports whether phone only holds digits, spaces and -+()
func PhoneHasValidChars(phone string) bool {
	return phoneCharsRegex.MatchString(phone)
}

// CountDigits returns how many decimal digits s contains
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// OnlyLetters accepts letters of any script plus spaces (accented names included)
func OnlyLetters(s string) bool {
	return letterRegex.MatchString(s)
}
