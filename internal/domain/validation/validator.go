// Package validation checks inbound form submissions.
//
// Rules run in a fixed order and the first failure wins: required fields,
// then email shape, then partner type. The rules themselves are struct tags
// on the model types.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/galactis/web/internal/domain/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of validating one submission.
type Result struct {
	err error
}

// Valid is the passing Result.
var Valid = Result{}

// Invalid returns a failing Result for the given rejection error.
func Invalid(err error) Result { return Result{err: err} }

// OK reports whether the submission passed.
func (r Result) OK() bool { return r.err == nil }

// Err returns the rejection error, one of the package sentinels, or nil.
func (r Result) Err() error { return r.err }

// Reason returns the client-facing rejection message, or "" when valid.
func (r Result) Reason() string { return Reason(r.err) }

// Validator runs the submission rules.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the basic_email rule registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("basic_email", validateBasicEmail)
	return &Validator{validate: v}
}

// Validate checks s and never panics. Unknown submission types are treated
// as missing every field.
func (v *Validator) Validate(s model.Submission) Result {
	switch sub := s.(type) {
	case model.GeneralContact:
		return v.check(sub)
	case *model.GeneralContact:
		if sub == nil {
			return Invalid(ErrMissingFields)
		}
		return v.check(*sub)
	case model.PartnerApplication:
		return v.check(sub)
	case *model.PartnerApplication:
		if sub == nil {
			return Invalid(ErrMissingFields)
		}
		return v.check(*sub)
	default:
		return Invalid(ErrMissingFields)
	}
}

func (v *Validator) check(s any) Result {
	err := v.validate.Struct(s)
	if err == nil {
		return Valid
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Invalid(ErrMissingFields)
	}
	return Invalid(classify(fieldErrs))
}

// classify picks the highest-priority rejection among all failed fields.
func classify(fieldErrs validator.ValidationErrors) error {
	var badEmail, badType bool
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "basic_email":
			badEmail = true
		case "oneof":
			badType = true
		default:
			return ErrMissingFields
		}
	}
	switch {
	case badEmail:
		return ErrInvalidEmail
	case badType:
		return ErrInvalidPartnerType
	default:
		return ErrMissingFields
	}
}

func validateBasicEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}
