package triangle

import (
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

// Period types understood by Headers.
const (
	PeriodOrigin      = 0
	PeriodDevelopment = 1
)

// Headers returns the origin or development labels of the project window as a
// single row.
func Headers(s domain.ProjectSettings, req domain.HeadersRequest) ([][]string, error) {
	p, err := NewPeriods(s, req.PeriodLength, req.PeriodLength)
	if err != nil {
		return nil, err
	}

	switch req.PeriodType {
	case PeriodOrigin:
		return [][]string{p.OriginLabels()}, nil
	case PeriodDevelopment:
		return [][]string{p.DevLabels()}, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPeriodType, "build headers"), "period_type", req.PeriodType)
	}
}
