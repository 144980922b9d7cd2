package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTicketCode synthesizes an opaque ticket code from the event, the
// zone, the current time and a random suffix. The tickets table carries a
// unique index on the column, so an (unlikely) collision aborts the
// purchase transaction instead of issuing a duplicate.
func NewTicketCode(eventId, zoneId uint) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("TKT-%d-%d-%d-%s", eventId, zoneId, time.Now().UnixMilli(), suffix)
}

// NewPurchaseCode builds the public order code shown to the customer.
func NewPurchaseCode() string {
	return "PUR-" + strings.ToUpper(uuid.New().String()[:8])
}
