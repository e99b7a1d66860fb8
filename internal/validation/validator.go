package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"budgetbook/internal/models"
)

// Validator wraps the go-playground validator with domain rules and
// json-tag field names so error messages match the wire field names.
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance.
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// NewValidator creates a validator with the budgeting rules registered.
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("frequency", validateFrequency)
	_ = v.RegisterValidation("income_type", validateIncomeType)
	_ = v.RegisterValidation("goal_type", validateGoalType)
	_ = v.RegisterValidation("goal_priority", validateGoalPriority)
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("not_blank", validateNotBlank)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates a struct and returns field-keyed error messages, or nil
// when the value is valid.
func (v *Validator) Struct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = messageForTag(fe)
	}
	return fields
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "not_blank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "positive_amount":
		return "must be a positive amount"
	case "frequency":
		return "must be monthly, weekly or yearly"
	case "income_type":
		return "must be a known income type"
	case "goal_type":
		return "must be a known goal type"
	case "goal_priority":
		return "must be high, medium or low"
	case "currency_code":
		return "must be a 3-letter currency code"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

func validatePositiveAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > 0
	default:
		return false
	}
}

func validateFrequency(fl validator.FieldLevel) bool {
	return models.IsValidFrequency(fl.Field().String())
}

func validateIncomeType(fl validator.FieldLevel) bool {
	return models.IsValidIncomeType(fl.Field().String())
}

func validateGoalType(fl validator.FieldLevel) bool {
	return models.IsValidGoalType(fl.Field().String())
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	return models.IsValidPriority(fl.Field().String())
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRegex.MatchString(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
