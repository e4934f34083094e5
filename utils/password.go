package utils

import (
	"crypto/rand"
	"math/big"
)

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"

// GeneratePassword produces a one-time random password for a new admin
// account. It is emailed once and only its bcrypt hash is stored.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}

	return string(out), nil
}
