package utils

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted on signup, update and reset.
const MinPasswordLength = 4

// IsPasswordValid enforces the password policy (at least MinPasswordLength characters).
func IsPasswordValid(p string) bool {
	return utf8.RuneCountInString(p) >= MinPasswordLength
}

// IsEmailValid accepts a bare address such as "user@example.com".
func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}

// IsURLValid accepts absolute http(s) URLs with a host.
func IsURLValid(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
