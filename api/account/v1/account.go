// Package accountv1 defines the messages and gRPC service of console.account.v1.AccountService.
package accountv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Direction of a MoveCredential request.
type Direction string

const (
	Direction_UP   Direction = "UP"
	Direction_DOWN Direction = "DOWN"
)

type CredentialItem struct {
	CredentialId string `json:"credentialId"`
	Label        string `json:"label"`
}

type Action struct {
	RequiredAction string `json:"requiredAction"`
	PageTitle      string `json:"pageTitle"`
}

type Control struct {
	Enabled bool `json:"enabled"`
}

// CredentialRow is one row of the signing-in panel. Up and Down are absent when
// no reorder buttons are rendered.
type CredentialRow struct {
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	Configured   bool              `json:"configured"`
	Fixed        bool              `json:"fixed"`
	Items        []*CredentialItem `json:"items,omitempty"`
	NotSetUpText string            `json:"notSetUpText,omitempty"`
	CreateAction *Action           `json:"createAction,omitempty"`
	UpdateAction *Action           `json:"updateAction,omitempty"`
	Removable    bool              `json:"removable"`
	Up           *Control          `json:"up,omitempty"`
	Down         *Control          `json:"down,omitempty"`
}

type Credential struct {
	Id        string                 `json:"id"`
	Type      string                 `json:"type"`
	Label     string                 `json:"label"`
	CreatedAt *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type GetSigningInRequest struct{}

type GetSigningInResponse struct {
	Rows []*CredentialRow `json:"rows"`
}

type MoveCredentialRequest struct {
	Type      string    `json:"type"`
	Direction Direction `json:"direction"`
}

func (x *MoveCredentialRequest) GetType() string {
	if x != nil {
		return x.Type
	}
	return ""
}

func (x *MoveCredentialRequest) GetDirection() Direction {
	if x != nil {
		return x.Direction
	}
	return ""
}

type MoveCredentialResponse struct {
	Rows []*CredentialRow `json:"rows"`
}

type StartCredentialSetupRequest struct {
	Type string `json:"type"`
}

func (x *StartCredentialSetupRequest) GetType() string {
	if x != nil {
		return x.Type
	}
	return ""
}

type StartCredentialSetupResponse struct {
	SetupId        string                 `json:"setupId,omitempty"`
	Type           string                 `json:"type"`
	RequiredAction string                 `json:"requiredAction"`
	PageTitle      string                 `json:"pageTitle"`
	Secret         string                 `json:"secret,omitempty"`
	OtpauthUrl     string                 `json:"otpauthUrl,omitempty"`
	RecoveryCodes  []string               `json:"recoveryCodes,omitempty"`
	ExpiresAt      *timestamppb.Timestamp `json:"expiresAt,omitempty"`
}

type CompleteOtpSetupRequest struct {
	SetupId string `json:"setupId"`
	Code    string `json:"code"`
	Label   string `json:"label,omitempty"`
}

func (x *CompleteOtpSetupRequest) GetSetupId() string {
	if x != nil {
		return x.SetupId
	}
	return ""
}

func (x *CompleteOtpSetupRequest) GetCode() string {
	if x != nil {
		return x.Code
	}
	return ""
}

func (x *CompleteOtpSetupRequest) GetLabel() string {
	if x != nil {
		return x.Label
	}
	return ""
}

type CompleteOtpSetupResponse struct {
	Credential *Credential `json:"credential"`
}

type CompleteRecoveryCodesSetupRequest struct {
	SetupId   string `json:"setupId"`
	Confirmed bool   `json:"confirmed"`
}

func (x *CompleteRecoveryCodesSetupRequest) GetSetupId() string {
	if x != nil {
		return x.SetupId
	}
	return ""
}

func (x *CompleteRecoveryCodesSetupRequest) GetConfirmed() bool {
	return x != nil && x.Confirmed
}

type CompleteRecoveryCodesSetupResponse struct {
	Credential *Credential `json:"credential"`
}

type UpdatePasswordRequest struct {
	NewPassword  string `json:"newPassword"`
	Confirmation string `json:"confirmation"`
}

func (x *UpdatePasswordRequest) GetNewPassword() string {
	if x != nil {
		return x.NewPassword
	}
	return ""
}

func (x *UpdatePasswordRequest) GetConfirmation() string {
	if x != nil {
		return x.Confirmation
	}
	return ""
}

type UpdatePasswordResponse struct{}

type RemoveCredentialRequest struct {
	CredentialId string `json:"credentialId"`
}

func (x *RemoveCredentialRequest) GetCredentialId() string {
	if x != nil {
		return x.CredentialId
	}
	return ""
}

type RemoveCredentialResponse struct{}
