package notifications

import (
	"fmt"
	"strings"
	"time"
)

const statusTimeLayout = "Jan 2, 2006 3:04 PM"

// StatusMessage composes the customer-facing text sent when an order moves to
// a new service status. It references the order id, the new status and the
// timestamp of the change.
func StatusMessage(laundryID, statusLabel string, at time.Time) string {
	return fmt.Sprintf(
		"Laundry update: order %s is now %q as of %s. Thank you!",
		strings.TrimSpace(laundryID),
		strings.TrimSpace(statusLabel),
		at.Format(statusTimeLayout),
	)
}
