package txn

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "money", validMoney)
	mustRegister(v, "payment_kind", validPaymentKind)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// maxAmount is the first value a NUMERIC(12,2) column cannot hold.
var maxAmount = decimal.New(1, 10)

// validMoney accepts positive amounts below maxAmount with at most two
// decimal places.
func validMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive() && d.LessThan(maxAmount) && d.Equal(d.Round(2))
}

func validPaymentKind(fl validator.FieldLevel) bool {
	return domain.PaymentKind(fl.Field().String()).IsValid()
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validateRequest: %w", err)
	}

	violations := make([]domain.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domain.FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return domain.NewValidationError(violations...)
}
