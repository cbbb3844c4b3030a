package catalog

import (
	"fmt"
	"strconv"
	"time"
)

// ParseISODuration parses the ISO 8601 durations the YouTube API reports,
// such as "PT3M25S", "PT1H2M" or "P1DT5S". Year and month designators are
// rejected since their length is ambiguous.
func ParseISODuration(s string) (time.Duration, error) {
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var total time.Duration
	inTime := false
	parsed := false
	num := ""
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
			continue
		case r == 'T':
			if inTime || num != "" {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			inTime = true
			continue
		}

		if num == "" {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		num = ""

		var unit time.Duration
		switch {
		case !inTime && r == 'W':
			unit = 7 * 24 * time.Hour
		case !inTime && r == 'D':
			unit = 24 * time.Hour
		case inTime && r == 'H':
			unit = time.Hour
		case inTime && r == 'M':
			unit = time.Minute
		case inTime && r == 'S':
			unit = time.Second
		default:
			return 0, fmt.Errorf("invalid duration %q: unsupported designator %q", s, r)
		}
		total += time.Duration(n) * unit
		parsed = true
	}
	if num != "" {
		return 0, fmt.Errorf("invalid duration %q: trailing number", s)
	}
	if !parsed {
		return 0, fmt.Errorf("invalid duration %q: no components", s)
	}
	return total, nil
}
