package domain

import (
	"time"
)

// Membership links a user to a realm with a role.
type Membership struct {
	ID        string
	UserID    string
	RealmID   string
	Role      Role
	CreatedAt time.Time
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)
