package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var (
	gradeMin = decimal.NewFromInt(1)
	gradeMax = decimal.NewFromInt(10)
)

// IsValidGrade reports whether a card grade falls in the closed range 1-10.
// Grading companies grade in half-point steps so fractional values are fine.
func IsValidGrade(grade float64) bool {
	d := decimal.NewFromFloat(grade)
	return d.GreaterThanOrEqual(gradeMin) && d.LessThanOrEqual(gradeMax)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
