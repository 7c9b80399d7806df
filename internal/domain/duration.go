package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*m`)
	letterPattern  = regexp.MustCompile(`[A-Za-z]`)
)

// ParseMinutes parses a free-form duration string into total minutes.
// Accepts an hours component ("2h") and a minutes component ("30m") in
// either order or combination, or a bare integer interpreted as minutes.
// Returns false for empty input, strings with letters that match neither
// component, and negative totals.
func ParseMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	total := 0
	matched := false
	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 60
		matched = true
	}
	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n
		matched = true
	}
	if !matched {
		if letterPattern.MatchString(s) {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		total = n
	}
	if total < 0 {
		return 0, false
	}
	return total, true
}

// FormatMinutes renders total minutes as "1h 30m", omitting zero
// components. A zero or negative total renders as "0m". Formatting a value
// produced by ParseMinutes and re-parsing it yields the same total.
func FormatMinutes(total int) string {
	if total <= 0 {
		return "0m"
	}
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
