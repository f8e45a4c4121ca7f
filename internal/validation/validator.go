package validation

import (
	"regexp"
	"time"

	"github.com/research-editing-site/internal/models"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	decimalRegex = regexp.MustCompile(`^[0-9]+$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidatePostInput validates an admin post create/update payload. A missing
// slug is not an error; the post service derives one from the title.
func ValidatePostInput(in *models.PostInput) []ValidationError {
	var errors []ValidationError

	if in.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	if in.Slug != "" && !slugRegex.MatchString(in.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: in.Slug})
	}

	if in.Status != "" && !models.ValidStatuses[in.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   in.Status,
		})
	}

	return errors
}

// ValidateUserInput validates an admin user create/update payload. Password
// is only required on create.
func ValidateUserInput(in *models.UserInput, requirePassword bool) []ValidationError {
	var errors []ValidationError

	if in.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(in.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: in.Email})
	}

	if in.Name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	if requirePassword && in.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}
	if in.Password != "" && len(in.Password) < 8 {
		errors = append(errors, ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if in.Role != "" && !models.ValidRoles[in.Role] {
		errors = append(errors, ValidationError{
			Field:   "role",
			Message: "invalid role, must be one of: admin, editor",
			Value:   in.Role,
		})
	}

	return errors
}

// ValidateSettingValue validates a setting update against its declared
// category conventions. Values are always strings; boolean settings must be
// the literal strings "true"/"false" and numeric settings decimal strings.
func ValidateSettingValue(key, value string) []ValidationError {
	var errors []ValidationError

	switch key {
	case "blog_enabled":
		if value != "true" && value != "false" {
			errors = append(errors, ValidationError{Field: key, Message: "value must be 'true' or 'false'", Value: value})
		}
	case "posts_per_page":
		if !decimalRegex.MatchString(value) {
			errors = append(errors, ValidationError{Field: key, Message: "value must be a decimal string", Value: value})
		}
	}

	return errors
}

// ValidTimestamp reports whether s is empty or a parseable RFC 3339 time.
func ValidTimestamp(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
