package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// HMACSHA256Hex returns the lowercase hex HMAC-SHA256 of message
func HMACSHA256Hex(secret, message []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyHex compares a received hex signature in constant time
func verifyHex(secret, message []byte, signature string) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return false
	}
	expected := HMACSHA256Hex(secret, message)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// Mask shortens a signature or id for logs
func Mask(value string) string {
	if value == "" {
		return "<missing>"
	}
	if utf8.RuneCountInString(value) <= 10 {
		return truncate(value, 4) + "…"
	}
	r := []rune(value)
	return string(r[:8]) + "…" + string(r[len(r)-6:])
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
