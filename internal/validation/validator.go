// Package validation wraps go-playground/validator with a shared instance and
// readable error messages. Field names are reported by their json tag.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Error collects every failed rule of one validation call.
type Error struct {
	Fields []FieldError
}

func (ve *Error) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "yaml"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// ValidateStruct validates s against its `validate` tags.
// Returns nil when s is valid.
func ValidateStruct(s interface{}) error {
	return convert(GetValidator().Struct(s), "")
}

// ValidateVar validates a single value against tag, reporting it as field.
func ValidateVar(field string, value interface{}, tag string) error {
	return convert(GetValidator().Var(value, tag), field)
}

func convert(err error, field string) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		name := fe.Namespace()
		if field != "" {
			name = field
		} else if idx := strings.Index(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		out.Fields[i] = FieldError{
			Field:   name,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe, name),
		}
	}
	return out
}

var messageTemplates = map[string]string{
	"required":    "%s is required",
	"required_if": "%s is required",
	"unique":      "%s must not contain duplicates",
}

var messageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError, field string) string {
	tag, param := fe.Tag(), fe.Param()

	if tpl, ok := messageTemplates[tag]; ok {
		return fmt.Sprintf(tpl, field)
	}
	if tpl, ok := messageWithParam[tag]; ok {
		return fmt.Sprintf(tpl, field, param)
	}

	var unit string
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Map, reflect.Array:
		unit = " items"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must have at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must have at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
