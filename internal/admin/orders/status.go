package orders

import "fmt"

// Status is the service status of a persisted order. The lifecycle is a
// strict forward sequence with no skips and no regression.
type Status string

const (
	// StatusOnService is the initial status of every submitted order.
	StatusOnService Status = "On Service"
	// StatusReadyToPickup means the laundry is processed and awaiting pick-up.
	StatusReadyToPickup Status = "Ready to pick up"
	// StatusLaundryDone is the terminal status.
	StatusLaundryDone Status = "Laundry Done"
)

// Next returns the status that follows s. The second return is false when s
// is terminal or unknown.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusOnService:
		return StatusReadyToPickup, true
	case StatusReadyToPickup:
		return StatusLaundryDone, true
	default:
		return "", false
	}
}

// Terminal reports whether s admits no further transition.
func (s Status) Terminal() bool { return s == StatusLaundryDone }

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOnService, StatusReadyToPickup, StatusLaundryDone:
		return true
	}
	return false
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("orders: unknown status %q", raw)
	}
	return s, nil
}
