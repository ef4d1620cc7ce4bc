package errors

import "fmt"

// RecordError wraps a specific error with context about which input record
// caused it. Line is set for line-oriented input, Index for document input.
type RecordError struct {
	Section string
	Line    int
	Index   int
	Record  []string
	Err     error
}

func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s record at line %d: %v (record: %v)", e.Section, e.Line, e.Err, e.Record)
	}
	return fmt.Sprintf("invalid %s record at index %d: %v", e.Section, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is makes every RecordError match ErrInvalidRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// Define specific error types for better error handling
var (
	ErrInvalidRecord     = fmt.Errorf("invalid record")
	ErrMissingID         = fmt.Errorf("missing id")
	ErrMissingScore      = fmt.Errorf("missing score")
	ErrInvalidID         = fmt.Errorf("invalid id")
	ErrInvalidScore      = fmt.Errorf("invalid score")
	ErrDuplicateAgentID  = fmt.Errorf("duplicate agent id")
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrNoSection         = fmt.Errorf("record outside of a section")
)
