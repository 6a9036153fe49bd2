package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host
)

var inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parser resolves date/time expressions in one timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Ho_Chi_Minh"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the timezone results are expressed in.
func (p *Parser) Location() *time.Location {
	return p.location
}

// inDuration resolves "in 3 days", "in 2 weeks" or "in 1 month" to a start of day.
func (p *Parser) inDuration(phrase string, ref time.Time) (time.Time, bool) {
	m := inDurationRe.FindStringSubmatch(phrase)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	switch {
	case strings.HasPrefix(m[2], "week"):
		return p.startOfDay(ref.AddDate(0, 0, n*7)), true
	case strings.HasPrefix(m[2], "month"):
		return p.startOfDay(ref.AddDate(0, n, 0)), true
	default:
		return p.startOfDay(ref.AddDate(0, 0, n)), true
	}
}

// nextWeekday resolves "next friday" to the first such day strictly after ref.
func (p *Parser) nextWeekday(phrase string, ref time.Time) (time.Time, bool) {
	target, ok := weekdays[strings.TrimPrefix(phrase, "next ")]
	if !ok {
		return time.Time{}, false
	}

	days := int(target - ref.In(p.location).Weekday())
	if days <= 0 {
		days += 7
	}
	return p.startOfDay(ref.AddDate(0, 0, days)), true
}

func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
