package utils

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/disintegration/imaging"
)

const productImageMaxWidth = 600

// NormalizeProductImage downscales an inline base64 product photo before it
// is persisted, so a phone camera shot does not bloat the document store.
// The image field is opaque and optional: anything that fails to decode is
// stored as-is.
func NormalizeProductImage(encoded string) string {
	if encoded == "" {
		return encoded
	}
	payload := encoded
	prefix := ""
	if idx := strings.Index(encoded, "base64,"); idx >= 0 {
		prefix = encoded[:idx+len("base64,")]
		payload = encoded[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return encoded
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return encoded
	}
	if img.Bounds().Dx() <= productImageMaxWidth {
		return encoded
	}
	resized := imaging.Resize(img, productImageMaxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		return encoded
	}
	if prefix == "" {
		return base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
