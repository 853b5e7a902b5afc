package passwordpolicy

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"length", "length(8)", false},
		{"length(12) and notUsername(undefined)", "length(12) and notUsername", false},
		{" digits(2) and upperCase and specialChars(0) ", "digits(2) and upperCase(1) and specialChars(0)", false},
		{"maxLength", "maxLength(64)", false},
		{"hashIterations(27500)", "", true},
		{"length(abc)", "", true},
		{"length(-1)", "", true},
		{"length(8", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPolicy) {
					t.Fatalf("Parse(%q) err = %v, want ErrInvalidPolicy", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	p, err := Parse("length(8) and digits(1) and upperCase(1) and notUsername")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name      string
		password  string
		username  string
		wantRules []string
	}{
		{"ok", "Secret123", "jdoe", nil},
		{"too short", "Ab1", "jdoe", []string{"length"}},
		{"no digit or upper", "secretsecret", "jdoe", []string{"digits", "upperCase"}},
		{"equals username", "JDoe12345", "jdoe12345", []string{"notUsername"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Validate(tt.password, tt.username)
			var got []string
			var ve *ViolationError
			if errors.As(err, &ve) {
				for _, v := range ve.Violations {
					got = append(got, v.Rule)
				}
			} else if err != nil {
				t.Fatalf("unexpected error type %T", err)
			}
			if diff := cmp.Diff(tt.wantRules, got); diff != "" {
				t.Errorf("violations (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_MessageMentionsLength(t *testing.T) {
	p, _ := Parse("length")
	err := p.Validate("short", "")
	if err == nil || err.Error() != "password policy: Invalid password: must be at least 8 characters." {
		t.Errorf("err = %v", err)
	}
	var empty Policy
	if err := empty.Validate("", ""); err != nil {
		t.Errorf("empty policy rejected: %v", err)
	}
}
