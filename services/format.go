package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyStrip   = regexp.MustCompile(`[^0-9.\-]`)
	qtyStrip        = regexp.MustCompile(`[^0-9.]`)
	unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
)

// FormatUSD formats an amount as US currency: dollar sign, thousands
// separators, exactly two decimals. Non-finite input renders as the zero
// value so a broken number never reaches the screen.
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// ParseCurrency converts currency-like text ("$1,234.50") to a number.
// Everything except digits, dots and minus signs is stripped first; any
// remainder that does not parse to a finite number yields 0.
func ParseCurrency(s string) float64 {
	cleaned := currencyStrip.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// NormalizeQtyString cleans a user-typed quantity into a canonical decimal
// string: digits and at most one dot (first wins), leading zeros stripped
// from the integer part, and a "0" prepended when the input starts with a
// dot (".5" -> "0.5"). A trailing dot is preserved so in-progress typing
// round-trips. The function is idempotent.
func NormalizeQtyString(s string) string {
	s = qtyStrip.ReplaceAllString(s, "")

	// Collapse to a single decimal point; the first one wins.
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = s[:i+1] + strings.ReplaceAll(s[i+1:], ".", "")
	}

	intPart, decPart, hasDot := strings.Cut(s, ".")

	// Strip leading zeros while another digit follows ("045" -> "45",
	// "0" stays "0").
	for len(intPart) > 1 && intPart[0] == '0' {
		intPart = intPart[1:]
	}

	if !hasDot {
		return intPart
	}
	if intPart == "" {
		intPart = "0"
	}
	return intPart + "." + decPart
}

// QtyValue converts a stored quantity string to a number for arithmetic.
// Empty or invalid input counts as 0.
func QtyValue(qty string) float64 {
	trimmed := strings.TrimSpace(qty)
	if trimmed == "" {
		return 0
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// SanitizeFilename replaces every run of filename-unsafe characters with a
// single underscore and caps the result at 80 characters.
func SanitizeFilename(name string) string {
	cleaned := unsafeFileChars.ReplaceAllString(name, "_")
	if len(cleaned) > 80 {
		cleaned = cleaned[:80]
	}
	return cleaned
}

// FormatPct renders a percentage rate without a trailing unit, so 8.25
// stays "8.25" and 10 stays "10".
func FormatPct(n float64) string {
	return formatNumber(n)
}

// formatNumber renders a float the way the CSV export needs it: full
// precision, no currency rounding.
func formatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
