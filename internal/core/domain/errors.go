package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrRequestParse is returned when a request file is malformed or unreadable.
	ErrRequestParse = zerr.New("failed to parse request")

	// ErrFileLock is returned when a file stays locked after every retry.
	ErrFileLock = zerr.New("file is locked by another process")

	// ErrUnknownProject is returned when a project is not present in the project map.
	ErrUnknownProject = zerr.New("project not found")

	// ErrUnknownDataset is returned when a dataset name is not declared in the dataset types.
	ErrUnknownDataset = zerr.New("dataset name not defined")

	// ErrUnknownCategory is returned when a category path segment matches no reserving class type.
	ErrUnknownCategory = zerr.New("reserving class type not defined")

	// ErrMissingColumn is returned when a data table lacks a column the request needs.
	ErrMissingColumn = zerr.New("column not found")

	// ErrUnknownFunction is returned when a request names an unsupported function.
	ErrUnknownFunction = zerr.New("invalid function name")

	// ErrInvalidPeriodType is returned when a header request carries an unsupported period type.
	ErrInvalidPeriodType = zerr.New("invalid period type")

	// ErrInvalidRequest is returned when a request field fails validation.
	ErrInvalidRequest = zerr.New("invalid request")

	// ErrInvalidMonth is returned when a value cannot be read as a calendar month.
	ErrInvalidMonth = zerr.New("invalid month")

	// ErrFormulaSyntax is returned when a formula cannot be parsed.
	ErrFormulaSyntax = zerr.New("formula syntax error")

	// ErrUnknownOperand is returned when a formula references a name with no bound matrix.
	ErrUnknownOperand = zerr.New("unknown formula operand")

	// ErrShapeMismatch is returned when formula operands have different dimensions.
	ErrShapeMismatch = zerr.New("matrix shape mismatch")

	// ErrConfigRead is returned when the agent configuration cannot be read.
	ErrConfigRead = zerr.New("failed to read agent configuration")

	// ErrConfigInvalid is returned when the agent configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid agent configuration")

	// ErrProjectFiles is returned when a project's settings files cannot be loaded.
	ErrProjectFiles = zerr.New("failed to load project files")

	// ErrTableLoad is returned when a data table cannot be read.
	ErrTableLoad = zerr.New("failed to load data table")

	// ErrResponseWrite is returned when a response file cannot be published.
	ErrResponseWrite = zerr.New("failed to write response")

	// ErrClaimFailed is returned when a request file could not be claimed.
	ErrClaimFailed = zerr.New("request already claimed")

	// ErrInboxWatch is returned when the inbox watcher cannot start.
	ErrInboxWatch = zerr.New("failed to watch inbox")

	// ErrLivenessLost is returned when the instance liveness file disappears.
	ErrLivenessLost = zerr.New("liveness file removed")

	// ErrKillRequested is returned when the configuration asks every agent to stop.
	ErrKillRequested = zerr.New("kill requested by configuration")
)

// KeyName is the zerr metadata key carrying the offending name of a lookup error.
const KeyName = "name"

// NameOf returns the value stored under KeyName anywhere in err's chain.
func NameOf(err error) string {
	for err != nil {
		var z *zerr.Error
		if !errors.As(err, &z) {
			return ""
		}
		if v, ok := z.Metadata()[KeyName]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		err = z.Unwrap()
	}
	return ""
}
