package fanout

import "fmt"

// BatchError summarizes a batch that settled with failed items.
type BatchError struct {
	Outcome Outcome
}

func (e *BatchError) Error() string {
	first := e.Outcome.Failures[0]
	return fmt.Sprintf("fanout: %d/%d items failed (first: %s: %v)",
		len(e.Outcome.Failures), e.Outcome.Total, first.ItemID, first.Err)
}
