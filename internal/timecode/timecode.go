package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat reports a time expression that is not SS, MM:SS, or HH:MM:SS.
var ErrInvalidFormat = errors.New("invalid time format")

// Seconds converts "SS", "MM:SS", or "HH:MM:SS" into whole seconds. Fields are
// not range checked, so "90" and "1:90" are both accepted.
func Seconds(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q has %d fields", ErrInvalidFormat, value, len(parts))
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("%w: %q: field %q is not an integer", ErrInvalidFormat, value, part)
		}
		total = total*60 + n
	}
	return total, nil
}

// ParseRange splits "<start>,<end>" and converts both halves with Seconds.
func ParseRange(value string) (start, end int, err error) {
	halves := strings.Split(value, ",")
	if len(halves) != 2 {
		return 0, 0, fmt.Errorf("%w: %q must be <start>,<end>", ErrInvalidFormat, value)
	}
	if start, err = Seconds(halves[0]); err != nil {
		return 0, 0, err
	}
	if end, err = Seconds(halves[1]); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
