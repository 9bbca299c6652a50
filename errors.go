package genetmap

import "fmt"

// MalformedInputError reports a structural problem with a genetic map:
// too few columns, a non-numeric required field, or physical positions
// that are not strictly increasing. Line is the 1-based line number in
// the source file, or 0 when the record did not come from a file.
type MalformedInputError struct {
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("genetmap: line %d: %s", e.Line, e.Reason)
	}

	return "genetmap: " + e.Reason
}

// ConfigurationError reports an unusable option value, such as a negative
// or duplicated column index or an unknown layout name.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("genetmap: %s: %s", e.Option, e.Reason)
}
