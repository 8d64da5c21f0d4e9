package vnpay

import (
	"strconv"
	"time"
)

const (
	payDateLayout     = "20060102150405"
	displayDateLayout = "15:04:05 02/01/2006"
	currencySuffix    = "\u00a0₫"
)

// FormatAmount renders a VND amount the way vi-VN locales do, e.g.
// 100000 → "100.000 ₫" (with a non-breaking space).
func FormatAmount(amount int64) string {
	neg := amount < 0
	digits := strconv.FormatInt(amount, 10)
	if neg {
		digits = digits[1:]
	}

	out := make([]byte, 0, len(digits)+len(digits)/3+1)
	if neg {
		out = append(out, '-')
	}
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	return string(out) + currencySuffix
}

// FormatTimestamp renders a 14-digit yyyyMMddHHmmss pay date as
// "HH:mm:ss dd/MM/yyyy". Anything else yields "".
func FormatTimestamp(raw string) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return ""
	}
	return t.Format(displayDateLayout)
}

func parseTimestamp(raw string) (time.Time, bool) {
	if len(raw) != len(payDateLayout) {
		return time.Time{}, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return time.Time{}, false
		}
	}
	t, err := time.ParseInLocation(payDateLayout, raw, vietnamZone)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
