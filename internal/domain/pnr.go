package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// PNRLength is fixed at 8 characters.
	PNRLength = 8
)

// NewPNR mints a uniform random booking reference over [A-Z0-9].
// Uniqueness is not guaranteed here: the commit transaction checks the
// code against the unique index on bookings.pnr and the caller
// regenerates on conflict.
func NewPNR() string {
	buf := make([]byte, PNRLength)
	max := big.NewInt(int64(len(pnrAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic(err)
		}
		buf[i] = pnrAlphabet[n.Int64()]
	}
	return string(buf)
}

// NormalizePNR maps user input onto the stored code form: trimmed and
// upper case. Every PNR lookup goes through this.
func NormalizePNR(pnr string) string {
	return strings.ToUpper(strings.TrimSpace(pnr))
}
