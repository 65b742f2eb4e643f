package utils

import (
	"fmt"
	"strings"
)

// FormatWon renders an integer amount of Korean won with thousands
// separators and the currency sign, e.g. 17000 -> "₩17,000".
func FormatWon(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	return sign + "₩" + strings.Join(groups, ",")
}

// FormatDuration renders elapsed seconds as HH:MM:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
