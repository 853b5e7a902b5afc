package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidPolicy is returned when a policy has no name or no rules.
var ErrInvalidPolicy = errors.New("invalid credential policy")

// Policy is a realm-level Rego module that can veto credential creation.
type Policy struct {
	ID        string
	RealmID   string
	Name      string
	Rules     string
	Enabled   bool
	CreatedAt time.Time
}

// Validate checks the fields required before compiling or storing the policy.
func (p *Policy) Validate() error {
	if p == nil || p.RealmID == "" || strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Rules) == "" {
		return ErrInvalidPolicy
	}
	return nil
}
