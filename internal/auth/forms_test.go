package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func formRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginForm_Valid(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		wantValid  bool
		wantErrors []string
	}{
		{"valid", "user@example.com", "secret", true, nil},
		{"missing email", "", "secret", false, []string{"email"}},
		{"malformed email", "not-an-email", "secret", false, []string{"email"}},
		{"no domain dot", "user@localhost", "secret", false, []string{"email"}},
		{"missing password", "user@example.com", "", false, []string{"password"}},
		{"everything missing", "", "", false, []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := ParseLoginForm(formRequest(t, url.Values{
				"email":    {tt.email},
				"password": {tt.password},
			}))

			if got := form.Valid(); got != tt.wantValid {
				t.Errorf("Valid() = %v, want %v (errors: %v)", got, tt.wantValid, form.Errors)
			}
			for _, field := range tt.wantErrors {
				if form.Errors[field] == "" {
					t.Errorf("expected an error for field %q, got %v", field, form.Errors)
				}
			}
		})
	}
}

func validRegisterValues() url.Values {
	return url.Values{
		"fullName":        {"Test User"},
		"username":        {"testuser"},
		"email":           {"user@example.com"},
		"password":        {"fifteen-characters"},
		"confirmPassword": {"fifteen-characters"},
	}
}

func TestRegisterForm_Valid(t *testing.T) {
	form := ParseRegisterForm(formRequest(t, validRegisterValues()))
	if !form.Valid() {
		t.Fatalf("expected valid form, got errors %v", form.Errors)
	}

	req := form.Request()
	if req.FullName != "Test User" || req.Username != "testuser" ||
		req.Email != "user@example.com" || req.Password != "fifteen-characters" {
		t.Errorf("unexpected request payload: %+v", req)
	}
}

func TestRegisterForm_FieldMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		field   string
		message string
	}{
		{
			"missing full name",
			func(v url.Values) { v.Set("fullName", "") },
			"fullName", "Full name is required",
		},
		{
			"missing username",
			func(v url.Values) { v.Set("username", "   ") },
			"username", "Username is required",
		},
		{
			"invalid email",
			func(v url.Values) { v.Set("email", "user@@example.com") },
			"email", "Invalid email address",
		},
		{
			"short password",
			func(v url.Values) { v.Set("password", "short"); v.Set("confirmPassword", "short") },
			"password", "Password must be at least 15 characters",
		},
		{
			"missing confirmation",
			func(v url.Values) { v.Set("confirmPassword", "") },
			"confirmPassword", "Please confirm your password",
		},
		{
			"mismatched confirmation",
			func(v url.Values) { v.Set("confirmPassword", "different-15-characters") },
			"confirmPassword", "Passwords don't match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validRegisterValues()
			tt.mutate(values)

			form := ParseRegisterForm(formRequest(t, values))
			if form.Valid() {
				t.Fatal("expected invalid form")
			}
			if got := form.Errors[tt.field]; got != tt.message {
				t.Errorf("Errors[%q] = %q, want %q", tt.field, got, tt.message)
			}
		})
	}
}

func TestRegisterForm_AccumulatesAllErrors(t *testing.T) {
	form := ParseRegisterForm(formRequest(t, url.Values{}))
	if form.Valid() {
		t.Fatal("expected invalid form")
	}

	for _, field := range []string{"fullName", "username", "email", "password", "confirmPassword"} {
		if form.Errors[field] == "" {
			t.Errorf("expected an error for field %q, got %v", field, form.Errors)
		}
	}
}

func TestRegisterForm_ExactMinimumPasswordLength(t *testing.T) {
	values := validRegisterValues()
	password := strings.Repeat("a", MinPasswordLength)
	values.Set("password", password)
	values.Set("confirmPassword", password)

	form := ParseRegisterForm(formRequest(t, values))
	if !form.Valid() {
		t.Errorf("expected a %d-character password to pass, got errors %v", MinPasswordLength, form.Errors)
	}
}
