package professionals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prodexlabs/prodex-backend/pkg/enums"
)

// nonFieldKey is the reserved FieldErrors key for record-level problems.
const nonFieldKey = "non_field"

// FieldErrors maps a field name, or non_field, to human-readable reasons.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, reason string) {
	fe[field] = append(fe[field], reason)
}

func nonFieldErrors(reason string) FieldErrors {
	return FieldErrors{nonFieldKey: {reason}}
}

// recordInput is the decode target for one raw record. Pointer fields keep
// absent keys distinguishable from present-but-empty values; unknown keys
// are ignored.
type recordInput struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`
	JobTitle    *string `json:"job_title"`
	Source      *string `json:"source"`
}

// NormalizedRecord is a validated, whitespace-trimmed record ready for the
// write path. Email is nil when absent or empty.
type NormalizedRecord struct {
	FullName    string                   `json:"full_name" validate:"required,max=255"`
	Email       *string                  `json:"email" validate:"omitempty,email,max=254"`
	Phone       string                   `json:"phone" validate:"required,max=20"`
	CompanyName string                   `json:"company_name" validate:"max=255"`
	JobTitle    string                   `json:"job_title" validate:"max=255"`
	Source      enums.ProfessionalSource `json:"source" validate:"required,oneof=direct partner internal"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ValidateRecord checks one raw record against the field contracts and
// returns its normalized form. Exactly one of the two returns is non-nil.
// Email and phone uniqueness is not checked here; the write path owns it so
// a record legitimately reusing its own identifiers can pass.
func ValidateRecord(raw json.RawMessage) (*NormalizedRecord, FieldErrors) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 || body[0] != '{' {
		return nil, nonFieldErrors("must be a professional object")
	}

	var input recordInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, nonFieldErrors("must be a professional object")
	}

	record := normalize(input)
	if err := validate.Struct(record); err != nil {
		return nil, fieldErrorsFrom(err)
	}
	return record, nil
}

func normalize(input recordInput) *NormalizedRecord {
	record := &NormalizedRecord{
		FullName:    trimmed(input.FullName),
		Phone:       trimmed(input.Phone),
		CompanyName: trimmed(input.CompanyName),
		JobTitle:    trimmed(input.JobTitle),
		Source:      enums.ProfessionalSource(trimmed(input.Source)),
	}
	if email := trimmed(input.Email); email != "" {
		record.Email = &email
	}
	return record
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func fieldErrorsFrom(err error) FieldErrors {
	fieldErrs := FieldErrors{}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrs.add(nonFieldKey, "must be a professional object")
		return fieldErrs
	}
	for _, fieldErr := range errs {
		fieldErrs.add(fieldErr.Field(), validationMessage(fieldErr))
	}
	return fieldErrs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of %s", orList(fe.Param()))
	}
	return "is invalid"
}

// orList renders a space-separated oneof param as "a, b or c".
func orList(param string) string {
	choices := strings.Fields(param)
	if len(choices) < 2 {
		return param
	}
	return strings.Join(choices[:len(choices)-1], ", ") + " or " + choices[len(choices)-1]
}
