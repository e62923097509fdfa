package convert

import "fmt"

// UnsupportedError reports a construct the grammar accepts but code
// generation intentionally does not implement. It is distinct from a parse
// error: the input was well-formed.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported feature: %s", e.Feature)
}

// ConversionError wraps any unexpected failure during rewriting so callers
// have a single type to handle for "could not convert."
type ConversionError struct {
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversion failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("conversion failed: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
