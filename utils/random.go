package utils

import (
	"crypto/rand"
	"strings"
)

// codeCharset keeps generated identifiers unambiguous in emails and URLs.
const codeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateCode returns an n-character uppercase alphanumeric code, used for
// wizard session ids and simulated order references.
func GenerateCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(n)
	for _, b := range buf {
		sb.WriteByte(codeCharset[int(b)%len(codeCharset)])
	}

	return sb.String(), nil
}
