package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

// codeAlphabet omits characters that are easy to misread (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	codeGroups    = 3
	codeGroupSize = 4
)

// GenerateRecoveryCodes returns n one-time codes formatted as XXXX-XXXX-XXXX.
func GenerateRecoveryCodes(n int) ([]string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	codes := make([]string, 0, n)
	for len(codes) < n {
		var b strings.Builder
		for g := 0; g < codeGroups; g++ {
			if g > 0 {
				b.WriteByte('-')
			}
			for i := 0; i < codeGroupSize; i++ {
				idx, err := rand.Int(rand.Reader, max)
				if err != nil {
					return nil, err
				}
				b.WriteByte(codeAlphabet[idx.Int64()])
			}
		}
		codes = append(codes, b.String())
	}
	return codes, nil
}

// NormalizeCode uppercases and strips separators and whitespace so user input matches the stored form.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r == '-' || r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// HashCode returns the hex SHA-256 of the normalized code. Used to store recovery codes without plaintext.
func HashCode(code string) string {
	h := sha256.Sum256([]byte(NormalizeCode(code)))
	return hex.EncodeToString(h[:])
}
