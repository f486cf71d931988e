package models

import "fmt"

// IncompleteRecordError reports a review export that cannot be reshaped into
// whole records.
type IncompleteRecordError struct {
	Lines    int
	Features int
	// Row is the zero-based record whose labels disagree with the header;
	// -1 when the line count itself is the problem.
	Row    int
	Reason string
}

func (e *IncompleteRecordError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("incomplete record %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("incomplete record: %d non-blank lines is not a multiple of %d features",
		e.Lines, e.Features)
}

// SchemaRenameError reports an expected column missing at a select or
// rename step.
type SchemaRenameError struct {
	Table  string
	Column string
}

func (e *SchemaRenameError) Error() string {
	return fmt.Sprintf("schema: %s: expected column %q not found", e.Table, e.Column)
}

// RowCountInvariantError reports a merged table whose size differs from the
// sum of its inputs, which means a join fanned out or dropped rows.
type RowCountInvariantError struct {
	Expected int
	Got      int
}

func (e *RowCountInvariantError) Error() string {
	return fmt.Sprintf("row count invariant violated: expected %d rows, got %d", e.Expected, e.Got)
}

// KeyCoercionError reports a join key that cannot be coerced to its key type.
type KeyCoercionError struct {
	Table  string
	Column string
	Row    int
	Value  string
}

func (e *KeyCoercionError) Error() string {
	return fmt.Sprintf("%s: row %d: column %q: cannot coerce %q to an integer key",
		e.Table, e.Row, e.Column, e.Value)
}

// DuplicateKeyError reports a join key that is expected to be unique but
// occurs more than once.
type DuplicateKeyError struct {
	Table string
	Key   string
	Count int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: key %s occurs %d times", e.Table, e.Key, e.Count)
}
