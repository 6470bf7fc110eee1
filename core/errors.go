package core

import "strings"

// FieldError reports an invalid field of a request body.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a client error: answered with the field map when Fields is set,
// with the message of Err otherwise.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

// NewFieldError is a ValidationError about a single field.
func NewFieldError(field, msg string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Error: msg}}}
}

func (err *ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		msgs = append(msgs, f.Field+": "+f.Error)
	}
	return strings.Join(msgs, "; ")
}

func (err *ValidationError) Unwrap() error { return err.Err }
