package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignUploadParams(t *testing.T) {
	sig := SignUploadParams(map[string]string{
		"timestamp": "1700000000",
		"public_id": "event_7_banner",
		"folder":    "events/banners",
	}, "s3cret")

	// keys must be sorted before hashing, whatever the map order
	assert.Equal(t, "14cada91600b6de2f81ea1ff912cc21dc7c485da", sig)
}

func TestSignUploadParamsTimestampOnly(t *testing.T) {
	sig := SignUploadParams(map[string]string{"timestamp": "1700000000"}, "s3cret")
	assert.Equal(t, "8823348e237f03991c5d33ec91da8888f4e3cf06", sig)
}
