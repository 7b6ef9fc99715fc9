package validator

import (
	"regexp"
	"strings"
	"unicode"
)

const minPasswordLength = 6

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(NormalizePhone(phone))
}

// NormalizePhone убирает пробелы, скобки и дефисы, оставляя цифры
// и ведущий плюс. Телефоны хранятся только в таком виде.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func ValidatePassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	for _, r := range password {
		if r > unicode.MaxASCII || unicode.IsSpace(r) {
			return false
		}
	}

	return true
}
