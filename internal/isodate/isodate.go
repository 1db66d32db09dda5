// Package isodate parses the ISO 8601 datetimes the metadata fields use:
// either the full yyyy-mm-ddTHH:MM:SSZ form or any truncated-but-valid prefix
// of it (yyyy, yyyy-mm, yyyy-mm-dd, ...). A parsed value keeps its precision
// so ordering checks can resolve a truncated date to the bound appropriate
// for its side of the comparison.
package isodate

import (
	"fmt"
	"time"
)

// Precision records how much of the full datetime the input carried.
type Precision int

const (
	Year Precision = iota
	Month
	Day
	Hour
	Minute
	Second
)

// TimePoint is a parsed datetime plus the precision it was written at.
type TimePoint struct {
	t    time.Time
	prec Precision
}

// layoutsByLen maps the length of an accepted input to its parse layout.
// Each accepted shape has a distinct length, so the lookup also rejects
// anything that is not a prefix of the full form.
var layoutsByLen = map[int]struct {
	layout string
	prec   Precision
}{
	len("2006"):                 {"2006", Year},
	len("2006-01"):              {"2006-01", Month},
	len("2006-01-02"):           {"2006-01-02", Day},
	len("2006-01-02T15"):        {"2006-01-02T15", Hour},
	len("2006-01-02T15:04"):     {"2006-01-02T15:04", Minute},
	len("2006-01-02T15:04:05"):  {"2006-01-02T15:04:05", Second},
	len("2006-01-02T15:04:05Z"): {time.RFC3339, Second},
}

// Parse reads a full or truncated ISO 8601 datetime. The returned error
// keeps the stdlib parser's cause so callers can surface it verbatim.
func Parse(value string) (TimePoint, error) {
	entry, ok := layoutsByLen[len(value)]
	if !ok {
		return TimePoint{}, fmt.Errorf("%q does not match yyyy-mm-ddTHH:MM:SSZ or a truncated prefix of it", value)
	}
	t, err := time.Parse(entry.layout, value)
	if err != nil {
		return TimePoint{}, fmt.Errorf("cannot parse %q: %w", value, err)
	}
	return TimePoint{t: t.UTC(), prec: entry.prec}, nil
}

// Precision returns the precision the input was written at.
func (p TimePoint) Precision() Precision {
	return p.prec
}

// Earliest resolves the point to the first instant it can denote: truncated
// units read as their zero value, which is what time.Parse already produced.
func (p TimePoint) Earliest() time.Time {
	return p.t
}

// Latest resolves the point to the last whole second it can denote, widening
// each truncated unit to its maximum.
func (p TimePoint) Latest() time.Time {
	switch p.prec {
	case Year:
		return p.t.AddDate(1, 0, 0).Add(-time.Second)
	case Month:
		return p.t.AddDate(0, 1, 0).Add(-time.Second)
	case Day:
		return p.t.Add(24*time.Hour - time.Second)
	case Hour:
		return p.t.Add(time.Hour - time.Second)
	case Minute:
		return p.t.Add(time.Minute - time.Second)
	default:
		return p.t
	}
}
