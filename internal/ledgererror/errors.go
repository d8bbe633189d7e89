// Package ledgererror defines the error types surfaced by a batch run.
package ledgererror

import "fmt"

// MissingInputError means a required upstream artifact is absent.
type MissingInputError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *MissingInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing input %s", e.Artifact)
	}
	return fmt.Sprintf("missing input %s at '%s': %v", e.Artifact, e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a transaction record that cannot be used.
// Line is 1-based and counts the header line; zero means the record did not
// come from a file.
type MalformedRecordError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed record on line %d: field %s='%s': %v",
			e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed record: field %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// MalformedTableError reports a persisted balance table that cannot be read back.
type MalformedTableError struct {
	Path   string
	Row    int
	Reason string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed balance table '%s' at row %d: %s", e.Path, e.Row, e.Reason)
}
