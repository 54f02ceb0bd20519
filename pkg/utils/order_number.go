package utils

import (
	"fmt"
	"time"
)

// OrderPeriod returns the "YYMM" period key for t.
func OrderPeriod(t time.Time) string {
	return t.Format("0601")
}

// FormatOrderNumber builds an order number in the 'YYMM00001' format, where
// the five digit suffix is the order's sequence in the month. Outside the
// production environment the env name is prefixed so test orders never
// collide with real ones.
func FormatOrderNumber(env string, t time.Time, seq int64) string {
	number := fmt.Sprintf("%s%05d", OrderPeriod(t), seq)
	if env == "PROD" {
		return number
	}
	return env + number
}
