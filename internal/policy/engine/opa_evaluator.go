package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	credentialdomain "account-console/backend/internal/credential/domain"
	"account-console/backend/internal/policy/repository"
)

// PolicyPackage is the Rego package credential policies must declare.
const PolicyPackage = "console.credentials"

const vetoQuery = "data.console.credentials.veto"

// ErrWrongPackage is returned by Validate when rules declare another package.
var ErrWrongPackage = errors.New("policy must declare package " + PolicyPackage)

// defaultRegoPolicy vetoes nothing. Realm policies add members to veto.
const defaultRegoPolicy = `package console.credentials

veto := set()
`

// OPAEvaluator evaluates the realm's enabled policies with OPA. The veto sets of all
// policies are unioned.
type OPAEvaluator struct {
	policyRepo repository.Repository
}

// NewOPAEvaluator returns an OPA-based evaluator loading policies from policyRepo.
func NewOPAEvaluator(policyRepo repository.Repository) *OPAEvaluator {
	return &OPAEvaluator{policyRepo: policyRepo}
}

// HealthCheck compiles and evaluates the built-in policy. It does not touch the database.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	_, err := evaluate(ctx, []string{defaultRegoPolicy}, map[string]interface{}{})
	return err
}

// Validate compiles rules on their own and checks the package declaration.
func (e *OPAEvaluator) Validate(rules string) error {
	mod, err := ast.ParseModule("policy.rego", rules)
	if err != nil {
		return fmt.Errorf("parse policy: %w", err)
	}
	if mod == nil || mod.Package.Path.String() != "data."+PolicyPackage {
		return ErrWrongPackage
	}
	if _, err := ast.CompileModules(map[string]string{"policy.rego": rules}); err != nil {
		return fmt.Errorf("compile policy: %w", err)
	}
	return nil
}

// CreateVetoes loads the realm's enabled policies and evaluates them against in.
// Policies that fail to load or evaluate are logged and yield no vetoes.
func (e *OPAEvaluator) CreateVetoes(ctx context.Context, in Input) (map[credentialdomain.TypeID]bool, error) {
	if e.policyRepo == nil {
		return nil, nil
	}
	policies, err := e.policyRepo.GetEnabledByRealm(ctx, in.RealmID)
	if err != nil {
		return nil, fmt.Errorf("load policies: %w", err)
	}
	var modules []string
	for _, p := range policies {
		if p.Enabled && p.Rules != "" {
			modules = append(modules, p.Rules)
		}
	}
	if len(modules) == 0 {
		return nil, nil
	}
	vetoed, err := evaluate(ctx, modules, buildInput(in))
	if err != nil {
		log.Printf("policy: evaluation for realm %s failed, no vetoes applied: %v", in.RealmID, err)
		return nil, nil
	}
	out := make(map[credentialdomain.TypeID]bool, len(vetoed))
	for _, id := range vetoed {
		if t, err := credentialdomain.ParseTypeID(id); err == nil {
			out[t] = true
		}
	}
	return out, nil
}

func buildInput(in Input) map[string]interface{} {
	configured := map[string]interface{}{}
	requirements := map[string]interface{}{}
	for _, t := range credentialdomain.Types() {
		configured[string(t.ID)] = in.Configured[t.ID]
		if r, ok := in.Requirements[t.ID]; ok {
			requirements[string(t.ID)] = r
		}
	}
	return map[string]interface{}{
		"realm": map[string]interface{}{"id": in.RealmID, "name": in.RealmName},
		"user": map[string]interface{}{
			"id":        in.UserID,
			"username":  in.Username,
			"email":     in.Email,
			"has_email": in.Email != "",
		},
		"configured":   configured,
		"requirements": requirements,
	}
}

// evaluate compiles modules together and returns the sorted members of the veto set.
func evaluate(ctx context.Context, modules []string, input map[string]interface{}) ([]string, error) {
	files := make(map[string]string, len(modules))
	for i, m := range modules {
		files[fmt.Sprintf("policy_%d.rego", i)] = m
	}
	compiler, err := ast.CompileModules(files)
	if err != nil {
		return nil, fmt.Errorf("compile policies: %w", err)
	}
	rs, err := rego.New(rego.Query(vetoQuery), rego.Compiler(compiler), rego.Input(input)).Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("eval policies: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return nil, nil
	}
	raw, ok := rs[0].Expressions[0].Value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("veto is %T, want set of strings", rs[0].Expressions[0].Value)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}
