// Package panel computes the rows of the account console "Signing in" panel from an
// explicit snapshot of a user's credentials, the realm browser flow, and the user's
// stored credential order. It has no I/O; callers load the snapshot and persist the
// preference returned by Move.
package panel

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	authflowdomain "account-console/backend/internal/authflow/domain"
	"account-console/backend/internal/credential/domain"
)

var (
	// ErrExecutionNotFound means a credential type's execution is missing from the browser flow.
	// The realm is misconfigured; the row is not silently hidden.
	ErrExecutionNotFound = errors.New("credential execution not found in browser flow")
	// ErrNotReorderable is returned by Move for fixed, unconfigured, or hidden types.
	ErrNotReorderable = errors.New("credential type cannot be reordered")
)

// Snapshot is the input of a single computation.
type Snapshot struct {
	Credentials []*domain.Credential
	Executions  []*authflowdomain.Execution
	// Preference is the user's stored type order; nil means never stored.
	Preference []domain.TypeID
	// CreateVetoes marks types whose creation a realm policy forbids.
	CreateVetoes map[domain.TypeID]bool
}

// Direction is the direction of a Move.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Item is one configured credential shown in a row.
type Item struct {
	CredentialID string
	Label        string
}

// Action is a create or update action leading to a registration wizard.
type Action struct {
	RequiredAction domain.RequiredAction
	PageTitle      string
}

// Control is an up or down button; nil on a Row means the button is not rendered.
type Control struct {
	Enabled bool
}

// Row is the render instruction for one credential type.
type Row struct {
	Type       domain.TypeID
	Title      string
	Configured bool
	Fixed      bool
	// Items lists configured instances; empty when not configured.
	Items []Item
	// NotSetUpText is set when not configured.
	NotSetUpText string
	Create       *Action
	Update       *Action
	Removable    bool
	Up           *Control
	Down         *Control
}

type entry struct {
	spec       domain.TypeSpec
	visible    bool
	fixed      bool
	configured bool
	creds      []*domain.Credential
}

func classify(s Snapshot) (map[domain.TypeID]*entry, error) {
	byType := make(map[domain.TypeID][]*domain.Credential)
	for _, c := range s.Credentials {
		if c != nil {
			byType[c.Type] = append(byType[c.Type], c)
		}
	}
	out := make(map[domain.TypeID]*entry)
	for _, spec := range domain.Types() {
		e := &entry{spec: spec, creds: byType[spec.ID], configured: len(byType[spec.ID]) > 0}
		exec := authflowdomain.FindByProvider(s.Executions, spec.ProviderID)
		switch {
		case exec == nil && spec.AlwaysVisible:
			e.visible, e.fixed = true, true
		case exec == nil:
			return nil, fmt.Errorf("%w: %s", ErrExecutionNotFound, spec.ProviderID)
		case spec.AlwaysVisible:
			e.visible = true
			e.fixed = exec.Requirement != authflowdomain.RequirementAlternative
		default:
			e.visible = exec.Requirement.Enabled()
			e.fixed = exec.Requirement == authflowdomain.RequirementRequired
		}
		out[spec.ID] = e
	}
	return out, nil
}

// DefaultPreference orders the registered types by the priority of their browser flow
// executions. Types without an execution follow in registry order.
func DefaultPreference(execs []*authflowdomain.Execution) []domain.TypeID {
	types := domain.Types()
	prio := func(spec domain.TypeSpec) (int, bool) {
		if e := authflowdomain.FindByProvider(execs, spec.ProviderID); e != nil {
			return e.Priority, true
		}
		return 0, false
	}
	sort.SliceStable(types, func(i, j int) bool {
		pi, oki := prio(types[i])
		pj, okj := prio(types[j])
		if oki != okj {
			return oki
		}
		return oki && pi < pj
	})
	out := make([]domain.TypeID, len(types))
	for i, t := range types {
		out[i] = t.ID
	}
	return out
}

// EffectivePreference returns stored followed by every registered type stored does
// not mention, in default order. Unknown and duplicate ids in stored are dropped.
func EffectivePreference(stored []domain.TypeID, execs []*authflowdomain.Execution) []domain.TypeID {
	seen := make(map[domain.TypeID]bool)
	out := make([]domain.TypeID, 0, len(stored)+len(domain.Types()))
	for _, id := range stored {
		if _, ok := domain.Lookup(id); !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range DefaultPreference(execs) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// movable returns the configured, visible, non-fixed types in preference order.
func movable(entries map[domain.TypeID]*entry, pref []domain.TypeID) []domain.TypeID {
	var out []domain.TypeID
	for _, id := range pref {
		if e := entries[id]; e != nil && e.visible && !e.fixed && e.configured {
			out = append(out, id)
		}
	}
	return out
}

// ComputeRows returns the rows to display, in display order.
func ComputeRows(s Snapshot) ([]Row, error) {
	entries, err := classify(s)
	if err != nil {
		return nil, err
	}
	pref := EffectivePreference(s.Preference, s.Executions)

	var fixed, configured, unconfigured []*entry
	for _, spec := range domain.Types() {
		if e := entries[spec.ID]; e.visible && e.fixed {
			fixed = append(fixed, e)
		}
	}
	orderable := 0
	for _, id := range pref {
		e := entries[id]
		if !e.visible || e.fixed {
			continue
		}
		orderable++
		if e.configured {
			configured = append(configured, e)
		} else {
			unconfigured = append(unconfigured, e)
		}
	}

	rows := make([]Row, 0, len(fixed)+len(configured)+len(unconfigured))
	for _, e := range fixed {
		rows = append(rows, newRow(e, s.CreateVetoes))
	}
	for i, e := range configured {
		r := newRow(e, s.CreateVetoes)
		if orderable > 1 {
			r.Up = &Control{Enabled: i > 0}
			r.Down = &Control{Enabled: i < len(configured)-1}
		}
		rows = append(rows, r)
	}
	for _, e := range unconfigured {
		rows = append(rows, newRow(e, s.CreateVetoes))
	}
	return rows, nil
}

func newRow(e *entry, vetoes map[domain.TypeID]bool) Row {
	r := Row{
		Type:       e.spec.ID,
		Title:      e.spec.Label,
		Configured: e.configured,
		Fixed:      e.fixed,
	}
	if !e.configured {
		r.NotSetUpText = e.spec.NotSetUpText()
		if e.spec.CanCreate(len(e.creds)) && !vetoes[e.spec.ID] {
			r.Create = &Action{RequiredAction: e.spec.CreateAction, PageTitle: e.spec.CreatePageTitle}
		}
		return r
	}
	for _, c := range e.creds {
		r.Items = append(r.Items, Item{CredentialID: c.ID, Label: c.Label()})
	}
	r.Removable = e.spec.Removable
	if e.spec.Updatable {
		r.Update = &Action{RequiredAction: e.spec.CreateAction, PageTitle: e.spec.CreatePageTitle}
	}
	return r
}

// Move swaps t with its neighbour among the reorderable rows and returns the new
// preference to persist. changed is false when t is already at the boundary; the
// returned preference is then the current one.
func Move(s Snapshot, t domain.TypeID, dir Direction) (pref []domain.TypeID, changed bool, err error) {
	entries, err := classify(s)
	if err != nil {
		return nil, false, err
	}
	pref = EffectivePreference(s.Preference, s.Executions)
	seq := movable(entries, pref)
	idx := -1
	for i, id := range seq {
		if id == t {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrNotReorderable, t)
	}
	j := idx - 1
	if dir == Down {
		j = idx + 1
	}
	if j < 0 || j >= len(seq) {
		return pref, false, nil
	}
	// Swap within the full preference so hidden and unconfigured types keep their slots.
	out := append([]domain.TypeID(nil), pref...)
	a, b := slices.Index(out, t), slices.Index(out, seq[j])
	out[a], out[b] = out[b], out[a]
	return out, true, nil
}
