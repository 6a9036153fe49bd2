package datemath

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockRe = regexp.MustCompile(`^(\d{1,2})(?:([:h])(\d{2})?)?(am|pm)?$`)

// ParseDateTime resolves an absolute or relative date/time expression against
// ref. Values with an explicit offset are converted to the parser's timezone,
// values without one are read as wall-clock time in it. The second return is
// false when s is empty or cannot be understood.
func (p *Parser) ParseDateTime(s string, ref time.Time) (ParseResult, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParseResult{}, false
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return ParseResult{AbsoluteTime: t.In(p.location)}, true
	}
	for _, l := range absoluteLayouts {
		if t, err := time.ParseInLocation(l.layout, s, p.location); err == nil {
			return ParseResult{AbsoluteTime: t, IsAllDay: l.allDay}, true
		}
	}

	return p.parseRelative(strings.ToLower(s), ref)
}

type clock struct {
	hour, minute int
	nextDay      bool // midnight at the end of the resolved day
	set          bool
}

func (p *Parser) parseRelative(s string, ref time.Time) (ParseResult, bool) {
	tokens := strings.Fields(strings.NewReplacer(",", " ", ".", " ").Replace(s))

	var (
		c      clock
		period string
		rest   []string
	)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if _, ok := dayPeriods[tok]; ok {
			period = tok
			continue
		}
		if fillerWords[tok] {
			continue
		}

		m := clockRe.FindStringSubmatch(tok)
		if m == nil {
			rest = append(rest, tok)
			continue
		}

		suffix := m[4]
		if m[2] == "" && suffix == "" {
			// A bare number is a clock value only when a unit follows it.
			if i+1 < len(tokens) && (tokens[i+1] == "am" || tokens[i+1] == "pm") {
				suffix = tokens[i+1]
				i++
			} else if i+1 < len(tokens) && tokens[i+1] == "giờ" {
				i++
			} else {
				rest = append(rest, tok)
				continue
			}
		}

		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[3] != "" {
			minute, _ = strconv.Atoi(m[3])
		}
		switch suffix {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		c = clock{hour: hour, minute: minute, set: true}
	}

	if period != "" {
		if !c.set {
			c = clock{hour: dayPeriods[period], set: true}
		} else {
			c.hour, c.nextDay = applyPeriod(c.hour, period)
		}
	}
	if c.hour > 23 || c.minute > 59 {
		return ParseResult{}, false
	}

	day, ok := p.resolveDay(strings.Join(rest, " "), ref, c.set)
	if !ok {
		return ParseResult{}, false
	}
	if !c.set {
		return ParseResult{AbsoluteTime: day, IsAllDay: true}, true
	}
	if c.nextDay {
		day = day.AddDate(0, 0, 1)
	}

	return ParseResult{
		AbsoluteTime: time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, 0, 0, p.location),
	}, true
}

// applyPeriod moves a 12-hour clock value into the given part of day.
// Twelve in the evening or at night is the midnight that ends the day.
func applyPeriod(hour int, period string) (int, bool) {
	switch period {
	case "chiều", "afternoon":
		if hour < 12 {
			return hour + 12, false
		}
	case "tối", "evening", "tonight":
		if hour == 12 {
			return 0, true
		}
		if hour < 12 {
			return hour + 12, false
		}
	case "trưa", "noon":
		if hour < 11 {
			return hour + 12, false
		}
	case "đêm":
		if hour == 12 {
			return 0, true
		}
		if hour >= 6 && hour < 12 {
			return hour + 12, false
		}
	}
	return hour, false
}

// resolveDay turns the day part of an expression into a start-of-day time.
// An empty phrase means the reference day, but only when a clock was given.
func (p *Parser) resolveDay(phrase string, ref time.Time, hasClock bool) (time.Time, bool) {
	if phrase == "" {
		return p.startOfDay(ref), hasClock
	}
	if off, ok := dayOffsets[phrase]; ok {
		return p.startOfDay(ref.AddDate(0, 0, off)), true
	}
	if strings.HasPrefix(phrase, "in ") {
		return p.inDuration(phrase, ref)
	}
	if strings.HasPrefix(phrase, "next ") {
		return p.nextWeekday(phrase, ref)
	}
	return time.Time{}, false
}
