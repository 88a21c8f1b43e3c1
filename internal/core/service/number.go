package service

import (
	"fmt"
	"time"
)

const orderNumberPrefix = "ORD"

// formatOrderNumber builds the human-readable order number from the creation
// time and the store-owned sequence value. The sequence makes the number
// collision-free under concurrent creation; the timestamp keeps it readable
// and roughly sortable.
func formatOrderNumber(t time.Time, seq uint64) string {
	return fmt.Sprintf("%s-%d-%d", orderNumberPrefix, t.UnixMilli(), seq)
}
