package utils

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// EncodeUID encodes a user ID for use in links: the decimal string of id,
// base64url-encoded without padding.
func EncodeUID(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeUID reverses EncodeUID. Trailing padding is tolerated.
func DecodeUID(uidb64 string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(trimPadding(uidb64))
	if err != nil {
		return 0, fmt.Errorf("error decoding uid: %w", err)
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing uid: %w", err)
	}
	return id, nil
}

func trimPadding(s string) string {
	for len(s) > 0 && s[len(s)-1] == '=' {
		s = s[:len(s)-1]
	}
	return s
}
