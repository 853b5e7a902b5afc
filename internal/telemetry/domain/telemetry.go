package domain

import (
	"encoding/json"
	"time"
)

// Event types emitted by the account console.
const (
	EventGRPCRequest       = "grpc_request"
	EventCredentialCreated = "credential_created"
	EventCredentialRemoved = "credential_removed"
	EventCredentialUpdated = "credential_updated"
	EventCredentialsMoved  = "credentials_reordered"
	EventExecutionUpdated  = "execution_updated"
)

// Event is a telemetry event (realm-scoped, optional user/session). It is the JSON
// payload written to Kafka and read back by the Loki worker.
type Event struct {
	RealmID   string          `json:"realmId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	EventType string          `json:"eventType"`
	Source    string          `json:"source,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
