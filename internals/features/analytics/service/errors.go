package service

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned before any query runs when the caller
// supplies a start date after the end date.
var ErrInvalidRange = errors.New("start date must be before end date")

// ErrSchemaNotReady is returned when the backing tables have not been
// migrated yet. Checked once up front, not per query.
var ErrSchemaNotReady = errors.New("users table not found in the database")

// AggregationError wraps an unexpected query failure. The cause is for
// server-side logs only; responses carry a generic message.
type AggregationError struct {
	Cause error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("dashboard aggregation failed: %v", e.Cause)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}
