// Package validation holds the field constraints of the user record as
// explicit functions returning a structured result instead of failing on the
// first broken rule.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 32
	passwordSymbols   = "@$!%*?&"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w]{2,4}$`)

// ValidateEmail reports whether email has the local@domain.tld shape accepted for accounts.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword reports whether a plaintext password satisfies the length
// and composition rules: 8-32 characters from [A-Za-z0-9@$!%*?&] with at
// least one lowercase, one uppercase, one digit and one symbol.
func ValidatePassword(password string) bool {
	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}

// Result is the outcome of validating a value: ok, or the list of failed fields.
type Result struct {
	Errors []apperrors.FieldError
}

// OK reports whether every rule passed.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Add appends a field error.
func (r *Result) Add(field, rule, message string) {
	r.Errors = append(r.Errors, apperrors.FieldError{Field: field, Rule: rule, Message: message})
}

// Merge appends every error of other.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
}

// Err returns a *apperrors.ValidationError, or nil when the result is ok.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return apperrors.NewValidationError(r.Errors...)
}

// Validator checks tagged structs against the user record rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered:
// useremail, strongpassword and notblank.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so errors line up with request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "useremail", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
	mustRegister(v, "strongpassword", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String())
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: registering " + tag + ": " + err.Error())
	}
}

// Struct validates s using its `validate` tags.
func (v *Validator) Struct(s any) Result {
	var res Result
	err := v.validate.Struct(s)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add("", "invalid", err.Error())
		return res
	}
	for _, fe := range verrs {
		res.Add(fe.Field(), fe.Tag(), message(fe))
	}
	return res
}

// Var validates a single value against a tag expression, reporting failures under field.
func (v *Validator) Var(field string, value any, tag string) Result {
	var res Result
	err := v.validate.Var(value, tag)
	if err == nil {
		return res
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add(field, "invalid", err.Error())
		return res
	}
	for _, fe := range verrs {
		res.Add(field, fe.Tag(), message(fe))
	}
	return res
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "useremail":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		}
	case "max":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be at most " + fe.Param() + " characters"
		}
	case "strongpassword":
		return "Password must contain at least one uppercase, lowercase letters, one number & one special character"
	case "url", "http_url":
		return fe.Field() + " must be a valid URL"
	}
	return fe.Field() + " failed the " + fe.Tag() + " rule"
}
