package helper

import (
	"crypto/sha1"
	"encoding/hex"
	"event_manager/config"
	"log"
	"sort"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// InitCloudinary builds a client from the CLOUDINARY_* settings.
func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}
	return cld
}

// SignUploadParams computes the Cloudinary upload signature: params
// sorted by key, joined as k=v with &, secret appended, SHA-1 hex.
// Values go in raw, no URL encoding.
func SignUploadParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(params[k])
	}
	stringToSign.WriteString(secret)

	sum := sha1.Sum([]byte(stringToSign.String()))
	return hex.EncodeToString(sum[:])
}
