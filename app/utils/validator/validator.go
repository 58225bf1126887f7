package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules
func New() *Validator {
	validate := validator.New()

	// Register custom validators
	registerCustomValidators(validate)

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator: validate,
	}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return NewValidationError(err.(validator.ValidationErrors))
	}
	return nil
}

// ValidateVar validates a single variable
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// ValidationError represents a validation error with user-friendly messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	var messages []string
	for field, message := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", field, message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	errors := make(map[string]string)

	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()

		switch tag {
		case "required":
			errors[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errors[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			errors[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
		case "max":
			errors[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case "uuid4":
			errors[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "handle":
			errors[field] = "handle must be lowercase letters and digits"
		case "account_role":
			errors[field] = "role must be one of admin, owner, manager"
		case "account_status":
			errors[field] = "status must be active or inactive"
		case "permission":
			errors[field] = fmt.Sprintf("%s is not a known permission", field)
		case "url":
			errors[field] = fmt.Sprintf("%s must be a valid URL", field)
		default:
			errors[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return &ValidationError{Errors: errors}
}

// registerCustomValidators registers custom validation rules
func registerCustomValidators(validate *validator.Validate) {
	// Handle validation: the shape the allocator produces, a lowercase
	// alphanumeric base with an optional numeric suffix.
	validate.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		handle := fl.Field().String()
		matched, _ := regexp.MatchString(`^[a-z0-9]+$`, handle)
		return matched && len(handle) >= 1 && len(handle) <= 16
	})

	// Role validation: the closed role set
	validate.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"admin", "owner", "manager"}
		for _, validRole := range validRoles {
			if role == validRole {
				return true
			}
		}
		return false
	})

	// Status validation: identity lifecycle status
	validate.RegisterValidation("account_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"active", "inactive"}
		for _, validStatus := range validStatuses {
			if status == validStatus {
				return true
			}
		}
		return false
	})

	// Permission validation: known manager capabilities
	validate.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		permission := fl.Field().String()
		validPermissions := []string{
			"view_dashboard",
			"edit_inventory",
			"view_sales",
			"manage_employees",
			"issue_invoices",
		}
		for _, validPermission := range validPermissions {
			if permission == validPermission {
				return true
			}
		}
		return false
	})
}

// Helper validation functions

// IsValidEmail checks if an email is valid
func IsValidEmail(email string) bool {
	v := New()
	return v.ValidateVar(email, "required,email") == nil
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(uuid string) bool {
	v := New()
	return v.ValidateVar(uuid, "required,uuid4") == nil
}

// IsValidHandle checks if a handle has the allocator's shape
func IsValidHandle(handle string) bool {
	v := New()
	return v.ValidateVar(handle, "required,handle") == nil
}

// IsValidPermission checks if a permission string is known
func IsValidPermission(permission string) bool {
	v := New()
	return v.ValidateVar(permission, "required,permission") == nil
}

// Common validation tags constants
const (
	TagRequired      = "required"
	TagEmail         = "email"
	TagUUID          = "uuid4"
	TagHandle        = "handle"
	TagAccountRole   = "account_role"
	TagAccountStatus = "account_status"
	TagPermission    = "permission"
	TagMin           = "min"
	TagMax           = "max"
	TagURL           = "url"
)
