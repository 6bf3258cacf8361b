// Package validation holds the single declarative schema for the wizard
// form. It validates the full WizardState as well as per-step subsets used
// to gate forward transitions, and reports failures as a field→message map
// instead of returning transport-style errors.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// FreeMailDomains is the denylist for the work-email rule.
var FreeMailDomains = []string{"gmail.com", "hotmail.com", "yahoo.com", "outlook.com"}

// FieldErrors maps JSON field names to human-readable messages.
// An empty map means the checked fields are valid.
type FieldErrors map[string]string

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report JSON field names so handlers and clients agree on keys.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("work_email", validateWorkEmail)
	validate.RegisterValidation("has_upper", validateHasUpper)
	validate.RegisterValidation("has_digit", validateHasDigit)
}

// stepFields lists the struct fields each step must satisfy before the
// wizard may advance past it.
var stepFields = map[domain.Step][]string{
	domain.StepIdentity:     {"FirstName", "LastName", "WorkEmail", "AcceptTerms"},
	domain.StepVerification: {"VerificationCode"},
	domain.StepPassword:     {"Password", "ConfirmPassword"},
	domain.StepBusiness:     {}, // all business fields are optional
}

// Validate checks the full state for final submission. The verification
// code is excluded: it is transient and already consumed by the verify
// call by the time submission happens.
func Validate(state domain.WizardState) FieldErrors {
	return collect(validate.StructExcept(state, "VerificationCode"))
}

// ValidateStep checks only the fields owned by the given step.
func ValidateStep(state domain.WizardState, step domain.Step) FieldErrors {
	fields := stepFields[step]
	if len(fields) == 0 {
		return nil
	}
	return collect(validate.StructPartial(state, fields...))
}

func collect(err error) FieldErrors {
	if err == nil {
		return nil
	}

	out := FieldErrors{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Schema misuse (non-struct input etc.), not user input.
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		if _, dup := out[fe.Field()]; dup {
			continue // first message per field wins
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// message mirrors the wording users saw in the original form.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case "firstName":
			return "First name is required"
		case "lastName":
			return "Last name is required"
		case "workEmail":
			return "Invalid email address"
		case "acceptTerms":
			return "You must accept the conditions"
		case "password":
			return "Password must be at least 8 characters"
		}
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "work_email":
		return "Please use a work email address"
	case "len":
		return "Code must be 6 digits"
	case "min":
		return "Password must be at least 8 characters"
	case "has_upper":
		return "Must contain at least one uppercase letter"
	case "has_digit":
		return "Must contain at least one number"
	case "eqfield":
		return "Passwords do not match"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// validateWorkEmail rejects denylisted free-mail domains. Syntactic email
// validity is handled by the preceding `email` tag, so this rule only looks
// at the domain part.
func validateWorkEmail(fl validator.FieldLevel) bool {
	_, dom, ok := strings.Cut(fl.Field().String(), "@")
	if !ok {
		return false
	}
	dom = strings.ToLower(dom)
	for _, free := range FreeMailDomains {
		if dom == free {
			return false
		}
	}
	return true
}

func validateHasUpper(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func validateHasDigit(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
