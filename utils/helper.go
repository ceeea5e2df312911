package utils

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewRecordId returns the id used for every record except orders.
func NewRecordId() string {
	return uuid.NewString()
}

var (
	orderIdMu   sync.Mutex
	lastOrderMs int64
)

// NewOrderId builds the human-displayable order code shown to customers:
// "DH" plus the last six digits of the unix-millisecond clock. Two orders in
// the same millisecond would collide, so the clock value is bumped past the
// previous one when needed.
func NewOrderId(now time.Time) string {
	ms := now.UnixMilli()
	orderIdMu.Lock()
	if ms <= lastOrderMs {
		ms = lastOrderMs + 1
	}
	lastOrderMs = ms
	orderIdMu.Unlock()

	millis := fmt.Sprintf("%d", ms)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "DH" + millis
}

// NewCategoryId keeps the "cat_" prefix the UI expects in category codes.
func NewCategoryId() string {
	return "cat_" + uuid.NewString()
}

func Ptr[T any](v T) *T {
	return &v
}
