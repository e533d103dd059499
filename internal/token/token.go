// Package token generates the opaque 6-digit codes mailed to users for
// account confirmation and password resets.
package token

import (
	"crypto/rand"
	"math/big"
)

// Length is the fixed size of a confirmation token.
const Length = 6

var digits = []byte("0123456789")

// GenerateConfirmationToken returns a random 6-digit code. Collisions with
// outstanding tokens are accepted as low-probability and not deduplicated.
func GenerateConfirmationToken() string {
	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken.
			panic(err)
		}
		buf[i] = digits[n.Int64()]
	}
	return string(buf)
}
