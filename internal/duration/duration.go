// Package duration parses the timeout strings the CLI accepts: humantime
// style ("1d 2h 3m 4s", "1day 2h"), Go durations ("2h45m", "1.5h"), or a
// bare number of seconds.
package duration

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Parse errors.
var (
	ErrInvalid  = errors.New("not a valid duration or number of seconds")
	ErrTooLarge = errors.New("duration is too large")
)

// Unit suffixes accepted after a number, in seconds. Mirrors the humantime
// vocabulary; months and years use its fixed-length definitions.
var unitSeconds = map[string]uint64{
	"s": 1, "sec": 1, "secs": 1, "second": 1, "seconds": 1,
	"m": 60, "min": 60, "mins": 60, "minute": 60, "minutes": 60,
	"h": 3600, "hr": 3600, "hrs": 3600, "hour": 3600, "hours": 3600,
	"d": 86400, "day": 86400, "days": 86400,
	"w": 604800, "week": 604800, "weeks": 604800,
	"M": 2630016, "month": 2630016, "months": 2630016,
	"y": 31557600, "year": 31557600, "years": 31557600,
}

// maxSeconds is the largest whole-second count representable as a
// time.Duration.
const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// Parse converts a user-supplied timeout string to a duration.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalid
	}

	// A bare number is a count of seconds, matching caffeinate's -t.
	if secs, err := strconv.ParseUint(s, 10, 64); err == nil {
		return secondsToDuration(secs)
	}
	if isDecimal(s) {
		// Numeric but not a valid uint64: overflow, not a format problem.
		return 0, ErrTooLarge
	}

	// Anything time.ParseDuration understands ("90m", "1.5h", "2h45m").
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, ErrInvalid
		}
		return d, nil
	}

	return parseHumantime(s)
}

// parseHumantime handles whitespace-separated number+unit terms such as
// "1d 2h 3m 4s" or "3min 17h 2s".
func parseHumantime(s string) (time.Duration, error) {
	var total uint64
	for _, field := range strings.Fields(s) {
		split := len(field)
		for i, r := range field {
			if r < '0' || r > '9' {
				split = i
				break
			}
		}
		if split == 0 || split == len(field) {
			return 0, ErrInvalid
		}

		n, err := strconv.ParseUint(field[:split], 10, 64)
		if err != nil {
			return 0, ErrTooLarge
		}
		unit, ok := unitSeconds[field[split:]]
		if !ok {
			return 0, ErrInvalid
		}

		if n > 0 && unit > maxSeconds/n {
			return 0, ErrTooLarge
		}
		term := n * unit
		if total > maxSeconds-term {
			return 0, ErrTooLarge
		}
		total += term
	}
	return secondsToDuration(total)
}

func secondsToDuration(secs uint64) (time.Duration, error) {
	if secs > maxSeconds {
		return 0, ErrTooLarge
	}
	return time.Duration(secs) * time.Second, nil
}

func isDecimal(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
