package domain

import (
	"errors"
	"time"
)

// TypeID identifies a credential type (e.g. "password", "otp").
type TypeID string

const (
	TypePassword           TypeID = "password"
	TypeOTP                TypeID = "otp"
	TypeRecoveryAuthnCodes TypeID = "recovery-authn-codes"
)

// Credential is a concrete registered authenticator belonging to a user.
type Credential struct {
	ID             string
	UserID         string
	Type           TypeID
	UserLabel      string
	SecretData     string // hash or encrypted secret; never returned to clients
	CredentialData string // JSON; type specific (e.g. OTP digits/period)
	CreatedAt      time.Time
}

// Validate validates the credential for persistence. Returns an error describing the first validation failure.
func (c *Credential) Validate() error {
	if c.UserID == "" {
		return errors.New("user_id is required")
	}
	if _, ok := Lookup(c.Type); !ok {
		return errors.New("unknown credential type")
	}
	if c.SecretData == "" {
		return errors.New("secret data is required")
	}
	return nil
}

// Label returns the label shown to the user: the user label, or the type's default instance label.
func (c *Credential) Label() string {
	if c.UserLabel != "" {
		return c.UserLabel
	}
	if spec, ok := Lookup(c.Type); ok {
		return spec.DefaultInstanceLabel
	}
	return string(c.Type)
}

// CountByType returns the number of credentials of each type.
func CountByType(creds []*Credential) map[TypeID]int {
	out := make(map[TypeID]int, len(creds))
	for _, c := range creds {
		if c == nil {
			continue
		}
		out[c.Type]++
	}
	return out
}
