package analytics

import (
	"fmt"
)

// InsufficientDataError reports that a computation requires more distinct
// values or rows than the transaction set provides. Analyses fail fast with
// this error rather than collapsing quantile buckets or returning partial
// reports.
type InsufficientDataError struct {
	Requirement string // what was counted, e.g. "distinct customers"
	Got         int
	Need        int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s: have %d, need at least %d", e.Requirement, e.Got, e.Need)
}

// DegenerateInputError reports a zero aggregate that would otherwise cause a
// division by zero downstream.
type DegenerateInputError struct {
	Quantity string // which aggregate was zero, e.g. "total revenue"
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: %s is zero", e.Quantity)
}
