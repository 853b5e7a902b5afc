// Package adminv1 defines the messages and gRPC service of console.admin.v1.AdminService,
// the realm administrator surface over user credentials, browser flow executions,
// credential policies and audit logs.
package adminv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type UserCredential struct {
	Id        string                 `json:"id"`
	UserId    string                 `json:"userId"`
	Type      string                 `json:"type"`
	Label     string                 `json:"label"`
	CreatedAt *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type ListUserCredentialsRequest struct {
	UserId string `json:"userId"`
}

func (x *ListUserCredentialsRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

type ListUserCredentialsResponse struct {
	Credentials []*UserCredential `json:"credentials"`
}

type DeleteUserCredentialRequest struct {
	UserId       string `json:"userId"`
	CredentialId string `json:"credentialId"`
}

func (x *DeleteUserCredentialRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *DeleteUserCredentialRequest) GetCredentialId() string {
	if x != nil {
		return x.CredentialId
	}
	return ""
}

type DeleteUserCredentialResponse struct{}

type Execution struct {
	Id          string `json:"id"`
	FlowAlias   string `json:"flowAlias"`
	ProviderId  string `json:"providerId"`
	DisplayName string `json:"displayName"`
	Requirement string `json:"requirement"`
	Priority    int32  `json:"priority"`
}

type ListExecutionsRequest struct {
	// Flow defaults to "browser".
	Flow string `json:"flow,omitempty"`
}

func (x *ListExecutionsRequest) GetFlow() string {
	if x != nil {
		return x.Flow
	}
	return ""
}

type ListExecutionsResponse struct {
	Executions []*Execution `json:"executions"`
}

type UpdateExecutionRequest struct {
	ExecutionId string `json:"executionId"`
	Requirement string `json:"requirement"`
}

func (x *UpdateExecutionRequest) GetExecutionId() string {
	if x != nil {
		return x.ExecutionId
	}
	return ""
}

func (x *UpdateExecutionRequest) GetRequirement() string {
	if x != nil {
		return x.Requirement
	}
	return ""
}

type UpdateExecutionResponse struct {
	Execution *Execution `json:"execution"`
}

type CredentialPolicy struct {
	Id        string                 `json:"id"`
	Name      string                 `json:"name"`
	Rules     string                 `json:"rules"`
	Enabled   bool                   `json:"enabled"`
	CreatedAt *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type ListCredentialPoliciesRequest struct{}

type ListCredentialPoliciesResponse struct {
	Policies []*CredentialPolicy `json:"policies"`
}

type PutCredentialPolicyRequest struct {
	Name    string `json:"name"`
	Rules   string `json:"rules"`
	Enabled bool   `json:"enabled"`
}

func (x *PutCredentialPolicyRequest) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *PutCredentialPolicyRequest) GetRules() string {
	if x != nil {
		return x.Rules
	}
	return ""
}

func (x *PutCredentialPolicyRequest) GetEnabled() bool {
	return x != nil && x.Enabled
}

type PutCredentialPolicyResponse struct {
	Policy *CredentialPolicy `json:"policy"`
}

type AuditLog struct {
	Id        string                 `json:"id"`
	UserId    string                 `json:"userId,omitempty"`
	Action    string                 `json:"action"`
	Resource  string                 `json:"resource"`
	Ip        string                 `json:"ip,omitempty"`
	Metadata  string                 `json:"metadata,omitempty"`
	CreatedAt *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type ListAuditLogsRequest struct {
	UserId   string `json:"userId,omitempty"`
	Action   string `json:"action,omitempty"`
	Resource string `json:"resource,omitempty"`
	PageSize int32  `json:"pageSize,omitempty"`
	// PageToken is the offset returned as NextPageToken by the previous page.
	PageToken string `json:"pageToken,omitempty"`
}

type ListAuditLogsResponse struct {
	Logs          []*AuditLog `json:"logs"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}
