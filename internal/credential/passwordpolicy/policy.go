// Package passwordpolicy parses and enforces realm password policies written as
// "length(8) and digits(1) and notUsername".
package passwordpolicy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidPolicy is returned by Parse for unknown rules or bad arguments.
var ErrInvalidPolicy = errors.New("invalid password policy")

// Defaults applied when a rule is given without an argument.
const (
	DefaultLength    = 8
	DefaultMaxLength = 64
	defaultCount     = 1
)

// Violation is one failed rule, e.g. {Rule: "length", Message: "..."}.
type Violation struct {
	Rule    string
	Message string
}

// ViolationError carries every rule the password failed.
type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "password policy: " + strings.Join(msgs, "; ")
}

type rule struct {
	name  string
	n     int
	check func(password, username string, n int) bool
	msg   string
}

// Policy is a parsed password policy. The zero value accepts every password.
type Policy struct {
	rules []rule
}

type ruleDef struct {
	takesArg bool
	def      int
	check    func(password, username string, n int) bool
	msg      string
}

var ruleDefs = map[string]ruleDef{
	"length": {true, DefaultLength, func(p, _ string, n int) bool {
		return len([]rune(p)) >= n
	}, "must be at least %d characters"},
	"maxLength": {true, DefaultMaxLength, func(p, _ string, n int) bool {
		return len([]rune(p)) <= n
	}, "must be at most %d characters"},
	"digits": {true, defaultCount, func(p, _ string, n int) bool {
		return count(p, unicode.IsDigit) >= n
	}, "must contain at least %d digits"},
	"upperCase": {true, defaultCount, func(p, _ string, n int) bool {
		return count(p, unicode.IsUpper) >= n
	}, "must contain at least %d upper case characters"},
	"lowerCase": {true, defaultCount, func(p, _ string, n int) bool {
		return count(p, unicode.IsLower) >= n
	}, "must contain at least %d lower case characters"},
	"specialChars": {true, defaultCount, func(p, _ string, n int) bool {
		return count(p, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) }) >= n
	}, "must contain at least %d special characters"},
	"notUsername": {false, 0, func(p, u string, _ int) bool {
		return u == "" || !strings.EqualFold(p, u)
	}, "must not be equal to the username"},
}

func count(s string, f func(rune) bool) int {
	n := 0
	for _, r := range s {
		if f(r) {
			n++
		}
	}
	return n
}

// Parse parses a policy string. Rules are joined with "and"; an empty string yields an empty policy.
func Parse(s string) (Policy, error) {
	var p Policy
	s = strings.TrimSpace(s)
	if s == "" {
		return p, nil
	}
	for _, part := range strings.Split(s, " and ") {
		part = strings.TrimSpace(part)
		name, arg := part, ""
		if open := strings.IndexByte(part, '('); open >= 0 {
			if !strings.HasSuffix(part, ")") {
				return Policy{}, fmt.Errorf("%w: %q", ErrInvalidPolicy, part)
			}
			name, arg = part[:open], strings.TrimSpace(part[open+1:len(part)-1])
		}
		def, ok := ruleDefs[name]
		if !ok {
			return Policy{}, fmt.Errorf("%w: unknown rule %q", ErrInvalidPolicy, name)
		}
		n := def.def
		// notUsername(undefined) is how stored realm policies spell the argument-less form.
		if def.takesArg && arg != "" && arg != "undefined" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 0 {
				return Policy{}, fmt.Errorf("%w: %s(%s)", ErrInvalidPolicy, name, arg)
			}
			n = v
		}
		msg := def.msg
		if def.takesArg {
			msg = fmt.Sprintf(def.msg, n)
		}
		p.rules = append(p.rules, rule{name: name, n: n, check: def.check, msg: "Invalid password: " + msg + "."})
	}
	return p, nil
}

// Validate returns a *ViolationError listing every failed rule, or nil.
func (p Policy) Validate(password, username string) error {
	var vs []Violation
	for _, r := range p.rules {
		if !r.check(password, username, r.n) {
			vs = append(vs, Violation{Rule: r.name, Message: r.msg})
		}
	}
	if len(vs) > 0 {
		return &ViolationError{Violations: vs}
	}
	return nil
}

// String renders the policy in its canonical form.
func (p Policy) String() string {
	parts := make([]string, len(p.rules))
	for i, r := range p.rules {
		if ruleDefs[r.name].takesArg {
			parts[i] = fmt.Sprintf("%s(%d)", r.name, r.n)
		} else {
			parts[i] = r.name
		}
	}
	return strings.Join(parts, " and ")
}
