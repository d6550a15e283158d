package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"math"
)

// GenerateRandomBytes returns securely generated random bytes.
// It will return an error if the system's secure random
// number generator fails to function correctly, in which
// case the caller should not continue
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateRandomString returns a URL-safe, base64 encoded
// securely generated random string.
func GenerateRandomString(s int) (string, error) {
	b, err := GenerateRandomBytes(s)
	return base64.URLEncoding.EncodeToString(b), err
}

// products like 90 * 1.15 land a hair below the intended half
const roundingEpsilon = 1e-9

// RoundHalfUp rounds x to the nearest integer, with halves going up (2.5 -> 3).
// Negative input is not expected here.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5 + roundingEpsilon))
}

// RoundTo rounds x to the given number of decimals.
func RoundTo(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}
