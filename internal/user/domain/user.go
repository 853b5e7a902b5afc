package domain

import (
	"errors"
	"time"
)

// User is an account in a realm.
type User struct {
	ID        string
	RealmID   string
	Username  string
	Email     string
	Name      string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.RealmID == "" {
		return errors.New("realm_id is required")
	}
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
	return nil
}
