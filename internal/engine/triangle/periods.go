package triangle

import (
	"math"
	"sort"
	"strconv"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

// Origin is one origin bucket of consecutive months.
type Origin struct {
	Label  string
	Start  domain.Month
	Months []domain.Month
}

// Periods is the origin by development grid of a project window.
type Periods struct {
	OriginLength int
	DevLength    int
	Origins      []Origin
	// Ages are the development ages in months, ascending.
	Ages        []int
	devEndMonth int
	bucket      map[domain.Month]int
}

// NewPeriods builds the grid for window s. devLength falls back to originLength
// when it does not divide it evenly.
func NewPeriods(s domain.ProjectSettings, originLength, devLength int) (*Periods, error) {
	switch originLength {
	case 1, 3, 6, 12:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "unsupported origin length"), domain.KeyName, domain.KeyOriginLength)
	}
	if devLength <= 0 || originLength%devLength != 0 {
		devLength = originLength
	}

	months := domain.MonthRange(s.OriginStart, s.OriginEnd)
	p := &Periods{
		OriginLength: originLength,
		DevLength:    devLength,
		devEndMonth:  s.DevEnd.MonthOfYear(),
		bucket:       make(map[domain.Month]int, len(months)),
	}

	for i := 0; i < len(months); i += originLength {
		group := months[i:min(i+originLength, len(months))]
		idx := len(p.Origins)
		p.Origins = append(p.Origins, Origin{
			Label:  OriginLabel(group[0], originLength),
			Start:  group[0],
			Months: group,
		})
		for _, m := range group {
			p.bucket[m] = idx
		}
	}

	p.Ages = developmentAges(len(months), devLength, p.devEndMonth)
	return p, nil
}

// developmentAges lists the ages ending on the calendar month of the last
// valuation, stepping by devLength.
func developmentAges(months, devLength, firstMonth int) []int {
	count := int(math.RoundToEven(float64(months) / float64(devLength)))

	var ages []int
	for prior := firstMonth - devLength; prior > 0; prior -= devLength {
		ages = append([]int{prior}, ages...)
	}
	for age := firstMonth; age < count*devLength+1; age += devLength {
		ages = append(ages, age)
	}
	return ages
}

// OriginLabel names the bucket starting at m.
func OriginLabel(m domain.Month, length int) string {
	year := strconv.Itoa(m.Year())
	switch length {
	case 3:
		return year + " Q" + strconv.Itoa((m.MonthOfYear()+2)/3)
	case 6:
		return year + " H" + strconv.Itoa((m.MonthOfYear()+5)/6)
	case 12:
		return year
	default:
		return m.String()
	}
}

// OriginLabels returns the origin labels in generation order.
func (p *Periods) OriginLabels() []string {
	out := make([]string, len(p.Origins))
	for i, o := range p.Origins {
		out[i] = o.Label
	}
	return out
}

// DevLabels returns the development labels with their "m" suffix.
func (p *Periods) DevLabels() []string {
	out := make([]string, len(p.Ages))
	for i, a := range p.Ages {
		out[i] = strconv.Itoa(a) + "m"
	}
	return out
}

// Bucket returns the origin index holding m.
func (p *Periods) Bucket(m domain.Month) (int, bool) {
	i, ok := p.bucket[m]
	return i, ok
}

// AgeIndex returns the smallest development age not below age.
func (p *Periods) AgeIndex(age int) (int, bool) {
	i := sort.SearchInts(p.Ages, age)
	return i, i < len(p.Ages)
}

// Observed returns how many development columns of origin row i have been observed.
//
// The corrections keyed by development length and valuation month are kept as
// received from the reserving team and are pending actuarial review.
func (p *Periods) Observed(i int) int {
	n := (len(p.Origins) - i) * (p.OriginLength / p.DevLength)
	m := p.devEndMonth

	switch p.DevLength {
	case 1:
		n -= 12 - m
	case 3:
		switch {
		case m <= 3:
			n -= 3
		case m <= 6:
			n -= 2
		case m <= 9:
			n--
		}
	case 6:
		if m <= 6 {
			n--
		}
	}
	return max(n, 0)
}
