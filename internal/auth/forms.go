// Package auth validates the login and registration forms before any
// credentials leave this application. The backend is the authority on
// credentials; these checks only catch what a visitor can fix locally.
package auth

import (
	"net/http"
	"regexp"
	"strings"

	"portableworkout-web/internal/shopapi"
)

// MinPasswordLength is the registration password floor, in characters.
const MinPasswordLength = 15

// emailPattern is deliberately loose: one @, something on each side, a dot in
// the domain. The backend does the real verification.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginForm is the parsed and validated login submission.
type LoginForm struct {
	Email    string
	Password string
	Errors   map[string]string
}

// ParseLoginForm reads the login fields from a submitted form.
func ParseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Errors:   map[string]string{},
	}
}

// Valid runs the local checks and reports whether the form may be submitted.
func (f *LoginForm) Valid() bool {
	if f.Email == "" || !emailPattern.MatchString(f.Email) {
		f.Errors["email"] = "Invalid email address"
	}
	if f.Password == "" {
		f.Errors["password"] = "Password is required"
	}
	return len(f.Errors) == 0
}

// RegisterForm is the parsed and validated registration submission.
type RegisterForm struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Errors          map[string]string
}

// ParseRegisterForm reads the registration fields from a submitted form.
func ParseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		FullName:        strings.TrimSpace(r.PostFormValue("fullName")),
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		Errors:          map[string]string{},
	}
}

// Valid runs the local checks and reports whether the form may be submitted.
// Field messages accumulate so one submission surfaces every problem at once.
func (f *RegisterForm) Valid() bool {
	if f.FullName == "" {
		f.Errors["fullName"] = "Full name is required"
	}
	if f.Username == "" {
		f.Errors["username"] = "Username is required"
	}
	if f.Email == "" || !emailPattern.MatchString(f.Email) {
		f.Errors["email"] = "Invalid email address"
	}
	if len(f.Password) < MinPasswordLength {
		f.Errors["password"] = "Password must be at least 15 characters"
	}
	if f.ConfirmPassword == "" {
		f.Errors["confirmPassword"] = "Please confirm your password"
	} else if f.Password != f.ConfirmPassword {
		f.Errors["confirmPassword"] = "Passwords don't match"
	}
	return len(f.Errors) == 0
}

// Request converts a valid form into the registration payload.
func (f *RegisterForm) Request() shopapi.RegisterRequest {
	return shopapi.RegisterRequest{
		FullName: f.FullName,
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	}
}
