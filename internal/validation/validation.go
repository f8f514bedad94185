package validation

import (
	"net/mail"
	"os"
	"strconv"
	"strings"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func MaxMessageLength() int {
	maxStr := os.Getenv("MAX_MESSAGE_LENGTH")
	if maxStr == "" {
		return 4000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 4000
	}
	return max
}

func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}

// ValidateProductInput checks the fields a listing must carry. Returns the
// offending field name, or "" when the input is acceptable.
func ValidateProductInput(name, category string, price int64, quantity int) string {
	if strings.TrimSpace(name) == "" {
		return "name"
	}
	if strings.TrimSpace(category) == "" {
		return "category"
	}
	if price < 0 {
		return "price"
	}
	if quantity < 0 {
		return "quantity"
	}
	return ""
}
