package auth

import (
	"encoding/base64"
	"strings"
)

const basicScheme = "Basic "

// ParseBasicAuthHeader extracts the user and password from an HTTP Basic
// Authorization header value. ok is false when the header is empty, lacks the
// "Basic " prefix, is not valid base64, or does not decode to two non-empty
// parts around the first colon. Passwords may themselves contain colons.
func ParseBasicAuthHeader(header string) (user, password string, ok bool) {
	payload, found := strings.CutPrefix(header, basicScheme)
	if !found || payload == "" {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", false
	}
	user, password, found = strings.Cut(string(decoded), ":")
	if !found || user == "" || password == "" {
		return "", "", false
	}
	return user, password, true
}
