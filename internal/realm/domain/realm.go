package domain

import (
	"errors"
	"time"
)

// Realm is an isolated tenant with its own users, flows, and password policy.
type Realm struct {
	ID   string
	Name string
	// PasswordPolicy is the policy string (e.g. "length(8) and notUsername").
	PasswordPolicy string
	CreatedAt      time.Time
}

// Validate validates the realm for persistence. Returns an error describing the first validation failure.
func (r *Realm) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
