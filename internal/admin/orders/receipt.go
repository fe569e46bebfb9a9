package orders

import (
	"fmt"
	"strings"
	"time"
)

const receiptTimeLayout = "Jan 2, 2006 3:04 PM"

// ProductSummary renders the attached product lines as the single string the
// backend stores, e.g. "Detergent x2, Bleach x1". An empty slice yields "".
func ProductSummary(lines []Line) string {
	if len(lines) == 0 {
		return ""
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d", line.Name, line.Quantity))
	}
	return strings.Join(parts, ", ")
}

// Receipt renders the printable drop-off slip for a committed order.
func Receipt(order Order, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Laundry Order %s\n", order.LaundryID)
	fmt.Fprintf(&b, "Date: %s\n", at.Format(receiptTimeLayout))
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	if order.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", order.CustomerPhone)
	}
	if order.WeightKL > 0 {
		fmt.Fprintf(&b, "Weight: %.1f kl\n", order.WeightKL)
	}
	if len(order.Services) > 0 {
		fmt.Fprintf(&b, "Services: %s\n", strings.Join(order.Services, ", "))
	}
	if order.ProductSummary != "" {
		fmt.Fprintf(&b, "Products: %s\n", order.ProductSummary)
	}
	fmt.Fprintf(&b, "Items: %d\n", order.ItemCount)
	fmt.Fprintf(&b, "Total: %.2f\n", Round2(order.TotalAmount))
	fmt.Fprintf(&b, "Payment: %s\n", order.PaymentStatus)
	return b.String()
}
