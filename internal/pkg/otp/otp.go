package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// codeSpace is the number of valid codes: the 900,000 integers in
// [100000, 999999]. The offset keeps the leading digit non-zero, so every
// code is exactly six decimal digits.
const (
	codeMin   = 100000
	codeSpace = 900000
)

// Code draws a 6-digit verification code uniformly from [100000, 999999]
// using the given randomness source. Pass a deterministic reader in tests.
func Code(r io.Reader) (string, error) {
	n, err := rand.Int(r, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

// New draws a code from crypto/rand.
func New() (string, error) {
	return Code(rand.Reader)
}
