package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

func sign(secret []byte, id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(mac(secret, id))
}

func verify(secret []byte, value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(got, mac(secret, id)) {
		return "", false
	}
	return id, true
}

func mac(secret []byte, id string) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(id))
	return h.Sum(nil)
}
