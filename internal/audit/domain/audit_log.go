package domain

import "time"

// AuditLog is one recorded action within a realm.
type AuditLog struct {
	ID        string
	RealmID   string
	UserID    string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}

// Filter narrows a realm's audit log listing. Empty fields match everything.
type Filter struct {
	UserID   string
	Action   string
	Resource string
}
