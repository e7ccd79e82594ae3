package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError describes one rejected request field, named by its JSON key
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the member request and returns every rejected field
func (r *MemberRequest) Validate() []FieldError {
	return structErrors(r)
}

// Validate checks the tournament request and returns every rejected field
func (r *TournamentRequest) Validate() []FieldError {
	errs := structErrors(r)
	if msg := moneyError(r.EntryFee); msg != "" {
		errs = append(errs, FieldError{Field: "entryFee", Message: msg})
	}
	if msg := moneyError(r.CashPrizeAmount); msg != "" {
		errs = append(errs, FieldError{Field: "cashPrizeAmount", Message: msg})
	}
	return errs
}

// moneyError returns the rejection message for an amount, or "" when it is acceptable.
// Missing amounts are reported by the required tag.
func moneyError(m *Money) string {
	switch {
	case m == nil:
		return ""
	case m.IsNegative():
		return "must not be negative"
	case !m.HasValidScale():
		return "must have at most 2 decimal places"
	case !m.InRange():
		return "must be less than 10000000000"
	default:
		return ""
	}
}

func structErrors(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
