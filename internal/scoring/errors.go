// ABOUTME: Error kinds raised by the scoring engine.
// ABOUTME: OutOfOrderWriteError guards the forward-only rule; MalformedRecordError guards shape.
package scoring

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// OutOfOrderWriteError reports a check-in write dated before the earliest writable date.
type OutOfOrderWriteError struct {
	Attempted civil.Date
	Earliest  civil.Date
}

func (e *OutOfOrderWriteError) Error() string {
	return fmt.Sprintf("out-of-order write: %s is before the earliest writable date %s", e.Attempted, e.Earliest)
}

// MalformedRecordError reports a check-in or survey answer that failed shape validation.
type MalformedRecordError struct {
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: %s: %s", e.Field, e.Reason)
}
