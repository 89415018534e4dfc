package utils

import "strings"

// MaskMSISDN masks a phone number for safe logging, keeping the country
// prefix and the last three digits.
// Example: "256783456789" -> "256******789"
func MaskMSISDN(msisdn string) string {
	n := len(msisdn)
	if n <= 6 {
		return strings.Repeat("*", n)
	}
	return msisdn[:3] + strings.Repeat("*", n-6) + msisdn[n-3:]
}
