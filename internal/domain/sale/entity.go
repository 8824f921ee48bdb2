package sale

import (
	"errors"
	"time"
)

var (
	ErrNotCompleted     = errors.New("sale is not completed")
	ErrAlreadyFulfilled = errors.New("sale already fulfilled")
	ErrClaimHeld        = errors.New("fulfillment already in progress")
)

// Fulfillment is the per-sale state machine:
//
//	unfulfilled -> fulfilling -> fulfilled
//	                  \-> unfulfilled (claim released, error recorded)
type Fulfillment struct {
	State       FulfillmentState
	StartedAt   *time.Time
	FulfilledAt *time.Time
	LastError   *string
	FailedAt    *time.Time
}

func NewFulfillment() Fulfillment {
	return Fulfillment{State: StateUnfulfilled}
}

// Claim transitions to fulfilling. At most one caller may succeed for a
// given sale; the persistence layer serializes concurrent claims with a row
// lock, so by the time this runs the caller holds the row exclusively.
func (f Fulfillment) Claim(status Status, now time.Time) (Fulfillment, error) {
	if status != StatusCompleted {
		return f, ErrNotCompleted
	}
	switch f.State {
	case StateFulfilled:
		return f, ErrAlreadyFulfilled
	case StateFulfilling:
		return f, ErrClaimHeld
	}
	startedAt := now
	return Fulfillment{State: StateFulfilling, StartedAt: &startedAt}, nil
}

// Complete transitions to fulfilled.
func (f Fulfillment) Complete(now time.Time) Fulfillment {
	fulfilledAt := now
	return Fulfillment{
		State:       StateFulfilled,
		StartedAt:   f.StartedAt,
		FulfilledAt: &fulfilledAt,
	}
}

// Release returns to unfulfilled with the failure recorded, so a later
// retry can claim again.
func (f Fulfillment) Release(cause string, now time.Time) Fulfillment {
	failedAt := now
	return Fulfillment{
		State:     StateUnfulfilled,
		LastError: &cause,
		FailedAt:  &failedAt,
	}
}

// MetadataFlags mirrors the state into the legacy metadata flag names so
// rows stay readable by unmigrated consumers of the shared store.
func (f Fulfillment) MetadataFlags() map[string]any {
	flags := map[string]any{
		"fulfilling": f.State == StateFulfilling,
		"fulfilled":  f.State == StateFulfilled,
	}
	if f.StartedAt != nil {
		flags["fulfillingStartedAt"] = f.StartedAt.UTC().Format(time.RFC3339)
	}
	if f.FulfilledAt != nil {
		flags["fulfilledAt"] = f.FulfilledAt.UTC().Format(time.RFC3339)
	}
	if f.LastError != nil {
		record := map[string]any{"message": *f.LastError}
		if f.FailedAt != nil {
			record["failedAt"] = f.FailedAt.UTC().Format(time.RFC3339)
		}
		flags["fulfillingError"] = record
	}
	return flags
}
