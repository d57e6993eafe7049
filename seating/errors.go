package seating

import (
	"errors"
	"fmt"
)

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrPartyNotFound    = errors.New("party not found")
	ErrInvalidShape     = errors.New("invalid table shape")
	ErrInvalidLayout    = errors.New("invalid layout")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrAlreadySeated    = errors.New("party already seated")
)

// CapacityError reports an assignment that would overflow a table.
type CapacityError struct {
	TableNumber int
	Needed      int
	Available   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("table %d: needs %d seats, %d available", e.TableNumber, e.Needed, e.Available)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }
