package export

import (
	"fmt"
	"strconv"
	"strings"
)

// formatInt renders an integer with thousands separators, e.g. 21720 -> "21,720".
func formatInt(n int) string {
	return groupDigits(strconv.Itoa(n))
}

// formatMoney renders a dollar amount with thousands separators and the given
// number of decimal places, e.g. (21720, 0) -> "$21,720".
func formatMoney(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	whole, frac, hasFrac := strings.Cut(s, ".")

	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")
	whole = groupDigits(whole)

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("$")
	b.WriteString(whole)
	if hasFrac {
		fmt.Fprintf(&b, ".%s", frac)
	}
	return b.String()
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
