package courseValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationErrors flattens validator.ValidationErrors into the field to
// message map used by middleware.ValidationErrorResponse
func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request data!"
		return errors
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errors[field] = fe.Field() + " is required!"
		case "min":
			errors[field] = fe.Field() + " is too short!"
		case "oneof":
			errors[field] = fe.Field() + " must be one of: " + fe.Param()
		default:
			errors[field] = "Invalid value for " + fe.Field() + "!"
		}
	}
	return errors
}
