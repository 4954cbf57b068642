package registration

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// generateOTP draws a 6-digit code uniformly from 000000-999999 using
// crypto/rand. Codes keep their leading zeros and are always handled as
// strings.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpEqual(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
