package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("location_category", validateLocationCategory)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLocationCategory(fl validator.FieldLevel) bool {
	category := fl.Field().String()
	validCategories := []string{"restroom", "restaurant", "public building"}

	for _, validCategory := range validCategories {
		if category == validCategory {
			return true
		}
	}
	return false
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	re := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return re.MatchString(email)
}
