package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTicketCode(t *testing.T) {
	code := NewTicketCode(12, 3)

	assert.True(t, strings.HasPrefix(code, "TKT-12-3-"))
	assert.Equal(t, code, strings.ToUpper(code))

	parts := strings.Split(code, "-")
	assert.Len(t, parts, 5)
	assert.Len(t, parts[4], 8)
}

func TestNewTicketCodeIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := NewTicketCode(1, 1)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestNewPurchaseCode(t *testing.T) {
	code := NewPurchaseCode()

	assert.True(t, strings.HasPrefix(code, "PUR-"))
	assert.Len(t, code, 12)
	assert.Equal(t, code, strings.ToUpper(code))
}
