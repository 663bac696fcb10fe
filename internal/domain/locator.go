package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// EncodeDataURI packs raw media bytes into an in-memory data URI locator.
func EncodeDataURI(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURI decomposes a data URI locator into its media type and raw
// bytes. Locators that are not data URIs cannot be decomposed locally.
func DecodeDataURI(locator string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(locator, "data:") {
		return "", nil, errors.New("locator is not a data URI")
	}
	head, payload, ok := strings.Cut(locator, ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	mime = strings.TrimPrefix(head, "data:")
	mime = strings.TrimSuffix(mime, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	return mime, data, nil
}
