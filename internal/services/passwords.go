package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var generatePasswordHash = bcrypt.GenerateFromPassword

var comparePasswordHash = bcrypt.CompareHashAndPassword

func hashPassword(password string) (string, error) {
	hash, err := generatePasswordHash([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func passwordMatches(hash, password string) bool {
	return comparePasswordHash([]byte(hash), []byte(password)) == nil
}
