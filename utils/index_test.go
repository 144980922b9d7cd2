package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))

	p := StringPtr("hello")
	assert.NotNil(t, p)
	assert.Equal(t, "hello", *p)
}

func TestPtr(t *testing.T) {
	n := Ptr(42)
	assert.Equal(t, 42, *n)

	s := Ptr("zone")
	assert.Equal(t, "zone", *s)
}

func TestGetFirstValue(t *testing.T) {
	values := map[string][]string{
		"folder": {"events/banners", "ignored"},
		"empty":  {},
	}

	assert.Equal(t, "events/banners", GetFirstValue(values, "folder"))
	assert.Equal(t, "", GetFirstValue(values, "empty"))
	assert.Equal(t, "", GetFirstValue(values, "missing"))
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("PUR-ABCD1234", 256)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
