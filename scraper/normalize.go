// scraper/normalize.go
package scraper

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gewnthar/rsfsync/models"
)

// ParseTime converts an RSF time string to total seconds. Accepted forms
// are "M:S" (seconds with comma or dot decimals) and a bare seconds value.
// The caller decides what to do with a parse failure; a 3:45.67 stage time
// never legitimately normalizes to 0, so callers treat errors as "skip".
func ParseTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}

	if m, rest, found := strings.Cut(s, ":"); found {
		minutes, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil {
			return 0, fmt.Errorf("bad minutes in %q: %w", s, err)
		}
		seconds, err := strconv.ParseFloat(decimalized(rest), 64)
		if err != nil {
			return 0, fmt.Errorf("bad seconds in %q: %w", s, err)
		}
		return float64(minutes)*60 + seconds, nil
	}

	seconds, err := strconv.ParseFloat(decimalized(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad time value %q: %w", s, err)
	}
	return seconds, nil
}

// ParseLength converts a stage length string to meters. The leading numeric
// token is read as kilometers ("12,5" -> 12500); trailing units or other
// text are ignored.
func ParseLength(s string) (int, error) {
	s = strings.TrimSpace(s)
	token := leadingNumericToken(s)
	if token == "" {
		return 0, fmt.Errorf("no numeric length in %q", s)
	}
	km, err := strconv.ParseFloat(decimalized(token), 64)
	if err != nil {
		return 0, fmt.Errorf("bad length %q: %w", s, err)
	}
	return int(km * 1000), nil
}

// ParseSurface reduces an RSF surface description ("Gravel", "tarmac") to
// the single-letter code RaceStat stores. Empty input falls back to gravel.
func ParseSurface(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.DefaultSurface
	}
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r))
}

// decimalized accepts the comma decimal separator RSF uses on some locales.
func decimalized(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

func leadingNumericToken(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c < '0' || c > '9') && c != '.' && c != ',' {
			break
		}
		end++
	}
	return s[:end]
}
