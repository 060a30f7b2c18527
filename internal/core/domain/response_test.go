package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestErrorRow(t *testing.T) {
	named := func(sentinel error, name string) error {
		return zerr.With(zerr.Wrap(sentinel, "lookup"), domain.KeyName, name)
	}

	tests := []struct {
		name        string
		err         error
		want        string
		descriptive bool
	}{
		{"dataset", named(domain.ErrUnknownDataset, "Paid"), "(dataset name not defined: Paid)", true},
		{"category", named(domain.ErrUnknownCategory, "Marine"), "(reserving class type not defined: Marine)", true},
		{"project", named(domain.ErrUnknownProject, "Home"), "(project not found: Home)", true},
		{"column", named(domain.ErrMissingColumn, "EP"), "(column not found: EP)", true},
		{"function", zerr.Wrap(domain.ErrUnknownFunction, "dispatch"), "(invalid function name)", true},
		{"period type", zerr.Wrap(domain.ErrInvalidPeriodType, "headers"), "(invalid input: periodType)", true},
		{"field", named(domain.ErrInvalidRequest, "Cumulative"), "(invalid input: Cumulative)", true},
		{"wrapped twice", zerr.Wrap(named(domain.ErrUnknownDataset, "Paid"), "handle"), "(dataset name not defined: Paid)", true},
		{"unexpected", errors.New("boom"), "0", false},
		{"formula", zerr.Wrap(domain.ErrFormulaSyntax, "compile"), "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, ok := domain.ErrorRow(tt.err)
			assert.Equal(t, tt.descriptive, ok)
			assert.Equal(t, [][]string{{tt.want}}, rows)
		})
	}
}
