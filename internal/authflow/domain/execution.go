package domain

import (
	"fmt"
	"strings"
)

// BrowserFlow is the alias of the realm flow the signing-in panel reads.
const BrowserFlow = "browser"

// Execution is one authenticator step in a realm authentication flow.
type Execution struct {
	ID          string
	RealmID     string
	FlowAlias   string
	ProviderID  string
	DisplayName string
	Requirement Requirement
	// Priority is the registration order within the flow; lower runs first.
	Priority int
}

type Requirement string

const (
	RequirementDisabled    Requirement = "DISABLED"
	RequirementAlternative Requirement = "ALTERNATIVE"
	RequirementRequired    Requirement = "REQUIRED"
	RequirementConditional Requirement = "CONDITIONAL"
)

// Enabled reports whether the requirement makes the matching credential type usable.
func (r Requirement) Enabled() bool {
	return r == RequirementRequired || r == RequirementAlternative
}

// ParseRequirement parses s case-insensitively.
func ParseRequirement(s string) (Requirement, error) {
	switch r := Requirement(strings.ToUpper(strings.TrimSpace(s))); r {
	case RequirementDisabled, RequirementAlternative, RequirementRequired, RequirementConditional:
		return r, nil
	default:
		return "", fmt.Errorf("invalid requirement %q", s)
	}
}

// FindByProvider returns the first execution with providerID, or nil.
func FindByProvider(execs []*Execution, providerID string) *Execution {
	for _, e := range execs {
		if e != nil && e.ProviderID == providerID {
			return e
		}
	}
	return nil
}
