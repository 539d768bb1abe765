package validator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	models "github.com/swiftbus/api/internal"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("gender", validateGender)
	v.RegisterValidation("future_date", validateFutureDate)
	v.RegisterValidation("passenger_age", validatePassengerAge)
	v.RegisterValidation("name_length", validateNameLength)
	v.RegisterValidation("seat_number", validateSeatNumber)
	v.RegisterValidation("payment_method", validatePaymentMethod)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}

func validatePassengerAge(fl validator.FieldLevel) bool {
	age := int(fl.Field().Int())
	return age >= 1 && age <= 120
}

func validateNameLength(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return len(name) > 0 && len(name) <= 50
}

func validateGender(fl validator.FieldLevel) bool {
	gender := fl.Field().String()
	supportedGenders := map[string]bool{
		"female": true,
		"male":   true,
		"other":  true,
	}
	return supportedGenders[gender]
}

var seatNumberPattern = regexp.MustCompile(`^[A-Za-z]?[0-9]{1,2}$`)

func validateSeatNumber(fl validator.FieldLevel) bool {
	return seatNumberPattern.MatchString(fl.Field().String())
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	method := models.PaymentMethod(fl.Field().String())
	switch method {
	case models.MethodCreditCard, models.MethodUPI, models.MethodNetBanking:
		return true
	}
	return false
}
