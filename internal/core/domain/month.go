package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.trai.ch/zerr"
)

// Month is a calendar month encoded as the integer YYYYMM.
type Month int

// NewMonth builds a Month from a year and a 1-based month of year.
func NewMonth(year, month int) Month {
	return Month(year*100 + month)
}

// Year returns the calendar year.
func (m Month) Year() int { return int(m) / 100 }

// MonthOfYear returns the 1-based month within the year.
func (m Month) MonthOfYear() int { return int(m) % 100 }

// Valid reports whether m encodes a real calendar month.
func (m Month) Valid() bool {
	mm := m.MonthOfYear()
	return m.Year() > 0 && mm >= 1 && mm <= 12
}

// Add returns the month n months after m. Negative n moves backwards.
func (m Month) Add(n int) Month {
	idx := m.Year()*12 + m.MonthOfYear() - 1 + n
	return NewMonth(idx/12, idx%12+1)
}

// FirstDay returns midnight UTC on the first day of m.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year(), time.Month(m.MonthOfYear()), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns midnight UTC on the last day of m.
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

func (m Month) String() string {
	return strconv.Itoa(int(m))
}

// Age returns the development age in months of dev relative to origin,
// counting the origin month itself as age 1.
func Age(origin, dev Month) int {
	return 12*(dev.Year()-origin.Year()) + (dev.MonthOfYear() - origin.MonthOfYear()) + 1
}

// MonthRange returns every month from start to end inclusive, in calendar order.
func MonthRange(start, end Month) []Month {
	if end < start {
		return nil
	}
	out := make([]Month, 0, Age(start, end))
	for m := start; m <= end; m = m.Add(1) {
		out = append(out, m)
	}
	return out
}

var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	"january": 1, "february": 2, "march": 3, "april": 4, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
}

// ParseMonth reads a month written as YYYYMM, "Mon YYYY", YYYYMon, YYYY-MM or MM/YYYY.
// Month names are matched case-insensitively in their short or full form.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	m, ok := parseMonth(s)
	if !ok || !m.Valid() {
		return 0, zerr.With(zerr.Wrap(ErrInvalidMonth, "unrecognised month format"), "value", s)
	}
	return m, nil
}

func parseMonth(s string) (Month, bool) {
	if s == "" {
		return 0, false
	}

	if len(s) == 6 && allDigits(s) {
		n, err := strconv.Atoi(s)
		return Month(n), err == nil
	}

	if fields := strings.Fields(s); len(fields) == 2 {
		month, ok := monthNames[strings.ToLower(fields[0])]
		if !ok {
			return 0, false
		}
		year, err := strconv.Atoi(fields[1])
		return NewMonth(year, month), err == nil
	}

	if len(s) >= 7 && allDigits(s[:4]) && allLetters(s[4:]) {
		month, ok := monthNames[strings.ToLower(s[4:])]
		if !ok {
			return 0, false
		}
		year, _ := strconv.Atoi(s[:4])
		return NewMonth(year, month), true
	}

	if sep := strings.IndexAny(s, "-/"); sep > 0 {
		first, second := s[:sep], s[sep+1:]
		switch {
		case len(first) == 4:
			return yearMonth(first, second)
		case len(second) == 4:
			return yearMonth(second, first)
		default:
			a, errA := strconv.Atoi(first)
			b, errB := strconv.Atoi(second)
			return Month(a*100 + b), errA == nil && errB == nil
		}
	}

	// Numeric cells may arrive as floats such as "201701.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return Month(int(f)), true
}

func yearMonth(yearText, monthText string) (Month, bool) {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return 0, false
	}
	if month, ok := monthNames[strings.ToLower(monthText)]; ok {
		return NewMonth(year, month), true
	}
	month, err := strconv.Atoi(monthText)
	return NewMonth(year, month), err == nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func allLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
