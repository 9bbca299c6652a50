package mapthin

import "fmt"

// InvalidToleranceError reports a tolerance that cannot bound an absolute
// interpolation error.
type InvalidToleranceError struct {
	Tolerance float64
}

func (e *InvalidToleranceError) Error() string {
	return fmt.Sprintf("mapthin: tolerance %v is not a non-negative number", e.Tolerance)
}
