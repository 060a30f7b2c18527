package domain

import "errors"

// GenericSentinel is the response cell published for failures without a descriptive row.
const GenericSentinel = "0"

// ErrorRow maps err to the single-cell response the client reads instead of a matrix.
// The second result is false when err has no descriptive form and the generic
// sentinel is returned.
func ErrorRow(err error) ([][]string, bool) {
	var text string
	switch {
	case errors.Is(err, ErrUnknownDataset):
		text = "(dataset name not defined: " + NameOf(err) + ")"
	case errors.Is(err, ErrUnknownCategory):
		text = "(reserving class type not defined: " + NameOf(err) + ")"
	case errors.Is(err, ErrUnknownProject):
		text = "(project not found: " + NameOf(err) + ")"
	case errors.Is(err, ErrMissingColumn):
		text = "(column not found: " + NameOf(err) + ")"
	case errors.Is(err, ErrUnknownFunction):
		text = "(invalid function name)"
	case errors.Is(err, ErrInvalidPeriodType):
		text = "(invalid input: " + KeyPeriodType + ")"
	case errors.Is(err, ErrInvalidRequest):
		text = "(invalid input: " + NameOf(err) + ")"
	default:
		return [][]string{{GenericSentinel}}, false
	}
	return [][]string{{text}}, true
}
