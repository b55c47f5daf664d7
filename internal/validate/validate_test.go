package validate

import (
	"strings"
	"testing"
)

func TestPassword_AcceptsStrongPassword(t *testing.T) {
	if msg := Password("Str0ng!pass"); msg != "" {
		t.Errorf("expected acceptance, got %q", msg)
	}
}

func TestPassword_RejectsWeakPasswords(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1!xyz"},
		{"no lowercase", "PASSWORD1!"},
		{"no uppercase", "password1!"},
		{"no digit", "Password!!"},
		{"no symbol", "Password11"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if msg := Password(tc.password); msg == "" {
				t.Errorf("expected rejection for %q", tc.password)
			}
		})
	}
}

func TestPassword_RejectsOverlongPassword(t *testing.T) {
	long := "Aa1!" + strings.Repeat("x", MaxPasswordLength)
	if msg := Password(long); msg == "" {
		t.Error("expected rejection for password beyond bcrypt limit")
	}
}

func TestPassword_AcceptsEverySymbolInSet(t *testing.T) {
	for _, r := range passwordSymbols {
		password := "Passw0rd" + string(r)
		if msg := Password(password); msg != "" {
			t.Errorf("symbol %q not accepted: %s", string(r), msg)
		}
	}
}

func TestTitle_RejectsOverlongValue(t *testing.T) {
	if msg := Title(strings.Repeat("a", MaxTitleLength+1)); msg == "" {
		t.Error("expected rejection for overlong title")
	}
	if msg := Title(strings.Repeat("a", MaxTitleLength)); msg != "" {
		t.Errorf("expected acceptance at the limit, got %q", msg)
	}
}

func TestFieldLimits_CoversAllFields(t *testing.T) {
	limits := FieldLimits()
	for _, field := range []string{"title", "description", "category", "username"} {
		if _, ok := limits[field]; !ok {
			t.Errorf("missing field limit for %q", field)
		}
	}
}
