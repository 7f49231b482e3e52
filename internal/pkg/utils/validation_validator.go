package utils

import (
	"regexp"
	"suma-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("time_of_day", validateTimeOfDay)
	validate.RegisterValidation("calendar_date", validateCalendarDate)
	validate.RegisterValidation("payment_method", validatePaymentMethod)
	validate.RegisterValidation("discount_type", validateDiscountType)
	validate.RegisterValidation("suma_role", validateRole)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	hasMinLen := len(password) >= 8
	hasSpecialChar := regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar).MatchString(password)
	hasUppercase := regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase).MatchString(password)
	return hasMinLen && hasSpecialChar && hasUppercase
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexTimeOfDay).MatchString(fl.Field().String())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexCalendarDate).MatchString(fl.Field().String())
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.PaymentMethodCash || value == constvars.PaymentMethodBankTransfer
}

func validateDiscountType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.DiscountTypePercentage || value == constvars.DiscountTypeFixed
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.RolePatient, constvars.RoleDoctor, constvars.RoleSeller, constvars.RoleAdmin:
		return true
	}
	return false
}
