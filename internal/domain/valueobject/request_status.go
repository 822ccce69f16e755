package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidStatusTransition is returned when a status change is not allowed
// from the current state.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// RequestStatus is an immutable value object for the lifecycle state of a
// credit request or credit profile.
type RequestStatus struct {
	value string
}

var (
	StatusPending  = RequestStatus{value: "pending"}
	StatusApproved = RequestStatus{value: "approved"}
	StatusRejected = RequestStatus{value: "rejected"}
)

// RequestStatusFromString reconstructs a RequestStatus from its string
// representation.
func RequestStatusFromString(s string) (RequestStatus, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return RequestStatus{}, fmt.Errorf("invalid request status: %s", s)
	}
}

// String returns the string representation.
func (s RequestStatus) String() string {
	return s.value
}

// IsZero returns true if the RequestStatus has not been set.
func (s RequestStatus) IsZero() bool {
	return s.value == ""
}

// IsPending returns true while the request awaits a decision.
func (s RequestStatus) IsPending() bool {
	return s.value == "pending"
}

// Equal checks equality with another RequestStatus.
func (s RequestStatus) Equal(other RequestStatus) bool {
	return s.value == other.value
}
