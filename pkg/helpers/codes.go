package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// refreshTokenBytes gives the opaque refresh token 40 bytes of entropy.
const refreshTokenBytes = 40

// GenRefreshToken returns a hex-encoded opaque session handle.
func GenRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

var codeRange = big.NewInt(900000)

// GenVerificationCode returns a 6-digit code uniform over 100000-999999.
func GenVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
