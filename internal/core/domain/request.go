package domain

import (
	"bufio"
	"bytes"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
)

// requestValidate checks typed requests. Failures are reported under the request key
// named by each field's `key` tag.
var requestValidate = newRequestValidate()

func newRequestValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("key")
	})
	return v
}

// Function names the operation a request asks for.
type Function string

const (
	// FunctionTriangle builds a development triangle.
	FunctionTriangle Function = "ADASTri"
	// FunctionVector builds a triangle and keeps its first development column.
	FunctionVector Function = "ADASVec"
	// FunctionHeaders lists origin or development labels.
	FunctionHeaders Function = "ADASHeaders"
	// FunctionProjectSettings dumps the resolved project date window.
	FunctionProjectSettings Function = "ADASProjectSettings"
)

// Request keys.
const (
	KeyFunction          = "Function"
	KeyProjectName       = "ProjectName"
	KeyDataPath          = "DataPath"
	KeyUserName          = "UserName"
	KeyDatasetName       = "DatasetName"
	KeyPath              = "Path"
	KeyOriginLength      = "OriginLength"
	KeyDevelopmentLength = "DevelopmentLength"
	KeyCumulative        = "Cumulative"
	KeyPeriodLength      = "PeriodLength"
	KeyPeriodType        = "periodType"
)

// DefaultPeriodLength is used when a request asks for the "Default" length.
const DefaultPeriodLength = 12

// Request is the ordered key/value content of one request file.
type Request struct {
	Keys   []string
	values map[string]string
}

// ParseRequest reads newline separated "key = value" pairs.
// Only the first '=' separates key from value. Blank and malformed lines are skipped.
func ParseRequest(content []byte) (*Request, error) {
	r := &Request{values: make(map[string]string)}

	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, " = ")
		if !ok {
			key, value, ok = strings.Cut(line, "=")
		}
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, dup := r.values[key]; !dup {
			r.Keys = append(r.Keys, key)
		}
		r.values[key] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(ErrRequestParse, "scan request"), "cause", err.Error())
	}

	for _, key := range []string{KeyFunction, KeyProjectName, KeyDataPath} {
		if r.values[key] == "" {
			return nil, zerr.With(zerr.Wrap(ErrRequestParse, "missing required key"), "key", key)
		}
	}
	return r, nil
}

// Get returns the raw value stored under key.
func (r *Request) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Function returns the requested operation.
func (r *Request) Function() Function { return Function(r.values[KeyFunction]) }

// ProjectName returns the project the request targets.
func (r *Request) ProjectName() string { return r.values[KeyProjectName] }

// DataPath returns the response path the client polls for.
func (r *Request) DataPath() string { return r.values[KeyDataPath] }

// UserName returns the requesting user, if given.
func (r *Request) UserName() string { return r.values[KeyUserName] }

// TriangleRequest is the typed form of an ADASTri or ADASVec request.
type TriangleRequest struct {
	Project           string `key:"ProjectName" validate:"required"`
	Dataset           string `key:"DatasetName" validate:"required"`
	Path              string `key:"Path"`
	OriginLength      int    `key:"OriginLength" validate:"oneof=1 3 6 12"`
	DevelopmentLength int    `key:"DevelopmentLength" validate:"gt=0"`
	Cumulative        bool   `key:"Cumulative"`
	Vector            bool
}

// HeadersRequest is the typed form of an ADASHeaders request.
type HeadersRequest struct {
	Project      string `key:"ProjectName" validate:"required"`
	PeriodLength int    `key:"PeriodLength" validate:"oneof=1 3 6 12"`
	PeriodType   int    `key:"periodType"`
}

// SettingsRequest is the typed form of an ADASProjectSettings request.
type SettingsRequest struct {
	Project string `key:"ProjectName" validate:"required"`
}

// Triangle decodes the triangle fields of r.
func (r *Request) Triangle() (TriangleRequest, error) {
	t := TriangleRequest{
		Project: r.ProjectName(),
		Dataset: r.values[KeyDatasetName],
		Path:    r.values[KeyPath],
		Vector:  r.Function() == FunctionVector,
	}

	var err error
	if t.OriginLength, err = r.length(KeyOriginLength, DefaultPeriodLength); err != nil {
		return t, err
	}
	if t.DevelopmentLength, err = r.length(KeyDevelopmentLength, t.OriginLength); err != nil {
		return t, err
	}
	if t.DevelopmentLength <= 0 || t.OriginLength%t.DevelopmentLength != 0 {
		t.DevelopmentLength = t.OriginLength
	}
	if t.Cumulative, err = r.flag(KeyCumulative); err != nil {
		return t, err
	}
	return t, validate(t)
}

// Headers decodes the header fields of r.
func (r *Request) Headers() (HeadersRequest, error) {
	h := HeadersRequest{Project: r.ProjectName()}

	var err error
	if h.PeriodLength, err = r.length(KeyPeriodLength, DefaultPeriodLength); err != nil {
		return h, err
	}
	raw, ok := r.values[KeyPeriodType]
	if !ok {
		return h, invalidField(KeyPeriodType)
	}
	if h.PeriodType, err = strconv.Atoi(raw); err != nil {
		return h, invalidField(KeyPeriodType)
	}
	return h, validate(h)
}

// Settings decodes the settings dump fields of r.
func (r *Request) Settings() (SettingsRequest, error) {
	s := SettingsRequest{Project: r.ProjectName()}
	return s, validate(s)
}

func (r *Request) length(key string, fallback int) (int, error) {
	raw, ok := r.values[key]
	if !ok || raw == "" || strings.EqualFold(raw, "Default") {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidField(key)
	}
	return n, nil
}

func (r *Request) flag(key string) (bool, error) {
	raw, ok := r.values[key]
	if !ok || raw == "" {
		return false, nil
	}
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, invalidField(key)
	}
}

func validate(v any) error {
	err := requestValidate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		return zerr.With(invalidField(fields[0].Field()), "rule", fields[0].Tag())
	}
	return zerr.Wrap(ErrInvalidRequest, err.Error())
}

func invalidField(key string) error {
	return zerr.With(zerr.Wrap(ErrInvalidRequest, "invalid request field"), KeyName, key)
}
