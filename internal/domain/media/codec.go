package media

import (
	"encoding/base64"
	"fmt"
)

// The stored content column is base64 text. Encode/Decode are the only two
// places that touch the encoding, so already-encoded payloads are never
// re-encoded by accident.

func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

func Decode(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode stored content: %w", err)
	}
	return raw, nil
}

// InlineURI builds a data URI a browser can render without a second fetch.
func InlineURI(encoded, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded)
}
