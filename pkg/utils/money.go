package utils

import "fmt"

// FormatAmountMinor renders a minor-unit amount as "200.00 CZK".
func FormatAmountMinor(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency)
}
