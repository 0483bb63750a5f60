package keywords

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultColor is used when a card has no color or an unparseable one.
const DefaultColor = 0x0099ff

// ParseColor parses a hex color with or without a 0x prefix. An empty string
// yields DefaultColor. On error DefaultColor is returned along with the error.
func ParseColor(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}

	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	// 24 bits is the full RGB range Discord accepts.
	n, err := strconv.ParseUint(digits, 16, 24)
	if err != nil {
		return DefaultColor, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return int(n), nil
}
