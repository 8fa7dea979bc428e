package models

import (
	"testing"
	"time"
)

func TestNormalizeContact(t *testing.T) {
	cases := []struct {
		name        string
		contactType string
		value       string
		want        string
	}{
		{"email lowercased", ContactTypeEmail, "Jordan@Example.COM", "jordan@example.com"},
		{"email trimmed", ContactTypeEmail, "  jordan@example.com  ", "jordan@example.com"},
		{"phone digits only", ContactTypePhone, "(555) 123-4567", "5551234567"},
		{"phone with country code", ContactTypePhone, "+1 555 123 4567", "15551234567"},
		{"phone already clean", ContactTypePhone, "5551234567", "5551234567"},
		{"phone all punctuation", ContactTypePhone, "()- ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeContact(tc.contactType, tc.value)
			if got != tc.want {
				t.Errorf("NormalizeContact(%q, %q) = %q, want %q", tc.contactType, tc.value, got, tc.want)
			}
		})
	}
}

func TestOTPTokenLive(t *testing.T) {
	now := time.Now()
	consumed := now.Add(-time.Minute)

	cases := []struct {
		name  string
		token OTPToken
		want  bool
	}{
		{
			name:  "fresh token",
			token: OTPToken{ExpiresAt: now.Add(10 * time.Minute), AttemptsRemaining: 3},
			want:  true,
		},
		{
			name:  "expired",
			token: OTPToken{ExpiresAt: now.Add(-time.Second), AttemptsRemaining: 3},
			want:  false,
		},
		{
			name:  "no attempts left",
			token: OTPToken{ExpiresAt: now.Add(10 * time.Minute), AttemptsRemaining: 0},
			want:  false,
		},
		{
			name:  "already consumed",
			token: OTPToken{ExpiresAt: now.Add(10 * time.Minute), AttemptsRemaining: 2, ConsumedAt: &consumed},
			want:  false,
		},
		{
			name:  "last attempt still live",
			token: OTPToken{ExpiresAt: now.Add(time.Minute), AttemptsRemaining: 1},
			want:  true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.Live(now); got != tc.want {
				t.Errorf("Live() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{Role: RoleAdmin}
	customer := User{Role: RoleCustomer}
	if !admin.IsAdmin() {
		t.Error("admin role should report IsAdmin")
	}
	if customer.IsAdmin() {
		t.Error("customer role should not report IsAdmin")
	}
}
