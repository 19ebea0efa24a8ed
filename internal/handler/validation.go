package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"projecthub/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const fieldNonField = "non_field_errors"

var setupValidatorOnce sync.Once

// setupValidator makes validation errors report json field names.
func setupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes and validates the body. A decoding failure is returned
// alone with fatal set; rule violations are collected per field so callers
// can add their own checks before answering.
func bindJSON(c *gin.Context, req interface{}) (errs response.ValidationErrors, fatal bool) {
	errs = response.ValidationErrors{}
	err := c.ShouldBindJSON(req)
	if err == nil {
		return errs, false
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.Add(fe.Field(), validationMessage(fe))
		}
		return errs, false
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		errs.Add(typeErr.Field, fmt.Sprintf("Expected a value of type %s.", typeErr.Type))
		return errs, true
	}

	errs.Add(fieldNonField, "Invalid JSON body.")
	return errs, true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return "Invalid value."
	}
}

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// validateDueDate parses raw and requires it to be strictly after now.
// An empty raw value is left to the required rule.
func validateDueDate(errs response.ValidationErrors, raw string, now time.Time) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dueDateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err != nil {
			continue
		}
		if !t.After(now) {
			errs.Add("due_date", "Due date must be in the future.")
		}
		return t
	}
	errs.Add("due_date", "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DD[T]HH:MM[:SS][Z|±HH:MM] or YYYY-MM-DD.")
	return time.Time{}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
