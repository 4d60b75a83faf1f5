// Package validate holds the form validation rules. Every validator returns a
// field-name to message map that only contains the fields that failed; an
// empty map means the form is valid.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a form field name to a human-readable error message.
type FieldErrors map[string]string

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether the value looks like local@domain.tld.
func IsEmail(value string) bool {
	return emailRe.MatchString(value)
}

// NotEmpty reports whether the value contains any non-whitespace character.
func NotEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinLength reports whether the value is at least min characters long,
// counting characters rather than bytes.
func MinLength(value string, min int) bool {
	return utf8.RuneCountInString(value) >= min
}

// LoginForm checks email and password for the login screen.
func LoginForm(email, password string) FieldErrors {
	errs := FieldErrors{}

	if !NotEmpty(email) {
		errs["email"] = "Email is required"
	} else if !IsEmail(email) {
		errs["email"] = "Please enter a valid email"
	}

	if !NotEmpty(password) {
		errs["password"] = "Password is required"
	} else if !MinLength(password, 6) {
		errs["password"] = "Password must be at least 6 characters"
	}

	return errs
}

// SignupForm checks the signup screen fields. confirmPassword must match
// password regardless of the other fields' validity.
func SignupForm(displayName, email, password, confirmPassword string) FieldErrors {
	errs := LoginForm(email, password)

	if !NotEmpty(displayName) {
		errs["displayName"] = "Name is required"
	}

	if password != confirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	return errs
}

// TaskForm checks the fields required to create or edit a task.
func TaskForm(title, categoryID string) FieldErrors {
	errs := FieldErrors{}

	if !NotEmpty(title) {
		errs["title"] = "Title is required"
	}

	if categoryID == "" {
		errs["categoryId"] = "Please select a category"
	}

	return errs
}

// CategoryForm checks the fields required to create or edit a category.
func CategoryForm(name, color string) FieldErrors {
	errs := FieldErrors{}

	if !NotEmpty(name) {
		errs["name"] = "Category name is required"
	}

	if !NotEmpty(color) {
		errs["color"] = "Please select a color"
	}

	return errs
}

// ProfileForm checks the editable profile fields.
func ProfileForm(displayName, email string) FieldErrors {
	errs := FieldErrors{}

	if !NotEmpty(displayName) {
		errs["displayName"] = "Name is required"
	}

	if !NotEmpty(email) {
		errs["email"] = "Email is required"
	} else if !IsEmail(email) {
		errs["email"] = "Please enter a valid email"
	}

	return errs
}
