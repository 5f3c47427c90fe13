package types

import "fmt"

// InvalidInput reports a contract violation detected at construction time:
// malformed currency, inconsistent asset pair/rate/bounds, negative
// tolerance, inverted hop limits, empty target (§6, §7). It is always
// returned, never panicked.
type InvalidInput struct {
	Reason string
}

func (e *InvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// NewInvalidInput builds an InvalidInput with a formatted reason.
func NewInvalidInput(format string, args ...interface{}) *InvalidInput {
	return &InvalidInput{Reason: fmt.Sprintf(format, args...)}
}

// PrecisionViolation reports that a structural arithmetic invariant could
// not be maintained (e.g. a divisor collapsed to zero during refinement).
// Per §6/§7 it is scoped to the affected candidate and does not abort the
// whole search unless raised at a point where the entire search cannot
// proceed.
type PrecisionViolation struct {
	Reason string
}

func (e *PrecisionViolation) Error() string {
	return fmt.Sprintf("precision violation: %s", e.Reason)
}

// NewPrecisionViolation builds a PrecisionViolation with a formatted reason.
func NewPrecisionViolation(format string, args ...interface{}) *PrecisionViolation {
	return &PrecisionViolation{Reason: fmt.Sprintf(format, args...)}
}
