package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// jsonFieldNames maps struct field names to their wire names for error messages.
var jsonFieldNames = map[string]string{
	"Username":    "username",
	"Email":       "email",
	"Password":    "password",
	"Role":        "role",
	"Name":        "name",
	"Discount":    "discount",
	"BrandID":     "brandId",
	"BranchID":    "branchId",
	"ValidFrom":   "validFrom",
	"ValidTo":     "validTo",
	"StoreUserID": "storeUserId",
	"RequestID":   "requestId",
	"Status":      "status",
}

// formatValidationError converts validator errors into stable, human-readable
// messages. The first failing field wins.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid request"
	}

	for _, fe := range ve {
		name, ok := jsonFieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}

		switch fe.Tag() {
		case "required":
			return "invalid request: " + name + " is required"
		case "notblank":
			return "invalid request: " + name + " cannot be whitespace only"
		case "max":
			return "invalid request: " + name + " exceeds maximum length"
		case "min":
			return "invalid request: " + name + " is too short"
		case "email":
			return "invalid request: " + name + " must be a valid email address"
		case "datetime":
			return "invalid request: " + name + " must be a YYYY-MM-DD date"
		case "gte", "lte", "gt":
			return "invalid request: " + name + " is out of range"
		case "oneof":
			return "invalid request: " + name + " is not an allowed value"
		default:
			return "invalid request: " + name + " is invalid"
		}
	}
	return "invalid request"
}
