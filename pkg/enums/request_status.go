package enums

import "fmt"

// RequestStatus tracks the lifecycle of a waste pickup request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCompleted RequestStatus = "completed"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusAccepted,
	RequestStatusCompleted,
}

// String implements fmt.Stringer.
func (r RequestStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RequestStatus.
func (r RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}

// CanTransitionTo reports whether the lifecycle permits moving from r to next.
// Transitions are strictly monotonic: pending to accepted to completed.
func (r RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch r {
	case RequestStatusPending:
		return next == RequestStatusAccepted
	case RequestStatusAccepted:
		return next == RequestStatusCompleted
	default:
		return false
	}
}
