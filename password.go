package roamstay

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the salt rounds the rest of the stack expects.
const bcryptCost = 10

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.New("error hashing password")
	}
	return string(hash), nil
}

// checkPasswordHash reports whether password matches hash. bcrypt compares
// in constant time; a mismatch is reported as false, never as an error.
func checkPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
