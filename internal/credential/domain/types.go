package domain

import "fmt"

// RequiredAction names the self-service wizard a create or update action leads to.
type RequiredAction string

const (
	ActionUpdatePassword              RequiredAction = "UPDATE_PASSWORD"
	ActionConfigureTOTP               RequiredAction = "CONFIGURE_TOTP"
	ActionConfigureRecoveryAuthnCodes RequiredAction = "CONFIGURE_RECOVERY_AUTHN_CODES"
)

// CreatePolicy reports whether a new instance may be created given the number of
// existing instances of the type.
type CreatePolicy func(existing int) bool

// ZeroInstances allows creation only when no instance of the type exists.
// Every built-in type uses it; a configured password is updated instead.
func ZeroInstances(existing int) bool { return existing == 0 }

// TypeSpec is the capability table entry for one credential type.
type TypeSpec struct {
	ID TypeID
	// Label is the row title (e.g. "Authenticator application").
	Label string
	// ProviderID is the browser flow execution that enables the type.
	ProviderID string
	// AlwaysVisible types are shown even without an enabled execution.
	AlwaysVisible bool
	// DefaultInstanceLabel is used when a credential has no user label.
	DefaultInstanceLabel string
	// CreateAction and CreatePageTitle describe the registration wizard.
	CreateAction    RequiredAction
	CreatePageTitle string
	CanCreate       CreatePolicy
	// Removable types offer a self-service remove action once configured.
	Removable bool
	// Updatable types offer an update action once configured (password).
	Updatable bool
}

// NotSetUpText is the row text shown when the type has no instance.
func (s TypeSpec) NotSetUpText() string {
	return fmt.Sprintf("%s is not set up.", s.Label)
}

var registry = []TypeSpec{
	{
		ID:                   TypePassword,
		Label:                "Password",
		ProviderID:           "auth-username-password-form",
		AlwaysVisible:        true,
		DefaultInstanceLabel: "My password",
		CreateAction:         ActionUpdatePassword,
		CreatePageTitle:      "Update password",
		CanCreate:            ZeroInstances,
		Updatable:            true,
	},
	{
		ID:                   TypeOTP,
		Label:                "Authenticator application",
		ProviderID:           "auth-otp-form",
		DefaultInstanceLabel: "Authenticator application",
		CreateAction:         ActionConfigureTOTP,
		CreatePageTitle:      "Mobile Authenticator Setup",
		CanCreate:            ZeroInstances,
		Removable:            true,
	},
	{
		ID:                   TypeRecoveryAuthnCodes,
		Label:                "Recovery authentication codes",
		ProviderID:           "auth-recovery-authn-code-form",
		DefaultInstanceLabel: "Recovery codes",
		CreateAction:         ActionConfigureRecoveryAuthnCodes,
		CreatePageTitle:      "Recovery Authentication Codes",
		CanCreate:            ZeroInstances,
		Removable:            true,
	},
}

// Types returns the registered credential types in registry order.
func Types() []TypeSpec {
	out := make([]TypeSpec, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the TypeSpec for id.
func Lookup(id TypeID) (TypeSpec, bool) {
	for _, s := range registry {
		if s.ID == id {
			return s, true
		}
	}
	return TypeSpec{}, false
}

// LookupByProvider returns the TypeSpec whose execution provider is providerID.
func LookupByProvider(providerID string) (TypeSpec, bool) {
	for _, s := range registry {
		if s.ProviderID == providerID {
			return s, true
		}
	}
	return TypeSpec{}, false
}

// ParseTypeID converts s to a registered TypeID.
func ParseTypeID(s string) (TypeID, error) {
	id := TypeID(s)
	if _, ok := Lookup(id); !ok {
		return "", fmt.Errorf("unknown credential type %q", s)
	}
	return id, nil
}
