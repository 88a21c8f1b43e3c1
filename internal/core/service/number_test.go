package service

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	now := time.Date(2024, 5, 12, 18, 30, 0, 0, time.UTC)

	number := formatOrderNumber(now, 7)

	assert.Equal(t, fmt.Sprintf("ORD-%d-7", now.UnixMilli()), number)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d+-\d+$`), number)
}

func TestFormatOrderNumber_DistinctSeq(t *testing.T) {
	now := time.Now()

	// Same instant, different sequence values never collide.
	assert.NotEqual(t, formatOrderNumber(now, 1), formatOrderNumber(now, 2))
}
