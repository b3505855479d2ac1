package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinCost is the lowest bcrypt cost factor accepted for stored
// passwords. Anything below is bumped up
const MinCost = 10

// HashPassword hashes p with bcrypt at the given cost factor
func HashPassword(p string, cost int) (string, error) {
	if p == "" {
		return "", errors.New("no password provided")
	}

	if cost < MinCost {
		cost = MinCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(p), cost)
	if err != nil {
		return "", err
	}

	return string(h), nil
}

// VerifyPasswd compares a password p with the stored bcrypt hash e.
// A mismatch is not an error, only unexpected failures are
func VerifyPasswd(p, e string) (ok bool, err error) {
	if err := bcrypt.CompareHashAndPassword([]byte(e), []byte(p)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
