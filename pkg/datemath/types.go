package datemath

import "time"

// ParseResult holds the result of parsing a date/time expression.
type ParseResult struct {
	AbsoluteTime time.Time
	IsAllDay     bool // no time of day was given
}

// absoluteLayouts are tried in order before relative phrases.
var absoluteLayouts = []struct {
	layout string
	allDay bool
}{
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
}

// dayPeriods maps a part of day to its default hour.
var dayPeriods = map[string]int{
	"sáng":      8,
	"trưa":      12,
	"chiều":     15,
	"tối":       19,
	"đêm":       22,
	"morning":   8,
	"noon":      12,
	"afternoon": 15,
	"evening":   19,
	"tonight":   20,
}

// fillerWords carry no date meaning and are dropped.
var fillerWords = map[string]bool{
	"at":  true,
	"on":  true,
	"by":  true,
	"lúc": true,
	"vào": true,
	"giờ": true,
}

// dayOffsets maps fixed day phrases to an offset from the reference day.
var dayOffsets = map[string]int{
	"today":              0,
	"hôm nay":            0,
	"nay":                0,
	"tomorrow":           1,
	"ngày mai":           1,
	"mai":                1,
	"day after tomorrow": 2,
	"ngày kia":           2,
	"ngày mốt":           2,
	"mốt":                2,
	"yesterday":          -1,
	"hôm qua":            -1,
	"next week":          7,
	"tuần sau":           7,
	"tuần tới":           7,
}
