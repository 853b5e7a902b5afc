package setup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP parameters stored with every otp credential.
const (
	TOTPDigits = 6
	TOTPPeriod = 30
	totpSkew   = 1
)

// OTPCredentialData is the credential_data JSON of an otp credential.
type OTPCredentialData struct {
	SubType   string `json:"subType"`
	Digits    int    `json:"digits"`
	Period    int    `json:"period"`
	Algorithm string `json:"algorithm"`
}

// GenerateTOTP creates a new secret for account and returns it with its otpauth:// URL.
func GenerateTOTP(issuer, account string) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      TOTPPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate totp: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTP reports whether code is valid for secret at t, allowing one period of clock skew.
func ValidateTOTP(code, secret string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, t, totp.ValidateOpts{
		Period:    TOTPPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// OTPCredentialJSON returns the credential_data stored for a new otp credential.
func OTPCredentialJSON() string {
	b, _ := json.Marshal(OTPCredentialData{SubType: "totp", Digits: TOTPDigits, Period: TOTPPeriod, Algorithm: "HmacSHA1"})
	return string(b)
}
