package setup

import (
	"encoding/json"
	"errors"
	"fmt"

	"account-console/backend/internal/security"
)

// ErrNoCodes is returned when a recovery code batch is empty.
var ErrNoCodes = errors.New("no recovery codes")

// RecoveryCodesSecret is the secret_data JSON of a recovery-authn-codes credential.
type RecoveryCodesSecret struct {
	Hashes []string `json:"hashes"`
}

// RecoveryCodesData is the credential_data JSON of a recovery-authn-codes credential.
type RecoveryCodesData struct {
	Total int `json:"total"`
}

// NewRecoveryCodes returns a fresh batch of n codes.
func NewRecoveryCodes(n int) ([]string, error) {
	codes, err := security.GenerateRecoveryCodes(n)
	if err != nil {
		return nil, fmt.Errorf("generate recovery codes: %w", err)
	}
	return codes, nil
}

// EncodeRecoveryCodes hashes codes and returns the secret and credential data to persist.
func EncodeRecoveryCodes(codes []string) (secretData, credentialData string, err error) {
	if len(codes) == 0 {
		return "", "", ErrNoCodes
	}
	s := RecoveryCodesSecret{Hashes: make([]string, len(codes))}
	for i, c := range codes {
		s.Hashes[i] = security.HashCode(c)
	}
	sb, err := json.Marshal(s)
	if err != nil {
		return "", "", err
	}
	db, err := json.Marshal(RecoveryCodesData{Total: len(codes)})
	if err != nil {
		return "", "", err
	}
	return string(sb), string(db), nil
}
