package customvalidator

import (
	"path/filepath"
	"regexp"
	"strings"

	"labstock/pkg/constants"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("condition", isKnownCondition); err != nil {
		return err
	}
	if err := v.RegisterValidation("role", isKnownRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("image_ext", isAllowedImageExtension); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

func isKnownCondition(fl validator.FieldLevel) bool {
	return constants.IsValidCondition(fl.Field().String())
}

func isKnownRole(fl validator.FieldLevel) bool {
	return constants.IsValidRole(fl.Field().String())
}

func isAllowedImageExtension(fl validator.FieldLevel) bool {
	ext := strings.ToLower(filepath.Ext(fl.Field().String()))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}
