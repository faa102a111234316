package crmsvc

import (
	"regexp"
	"strings"

	"github.com/corray333/backend-labs/crm/internal/service/models/crmerr"
	"github.com/corray333/backend-labs/crm/internal/service/models/customer"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxAmount is the exclusive upper bound of stored prices and order totals (NUMERIC(10, 2)).
var maxAmount = decimal.New(1, 8)

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$|^\d{3}-\d{3}-\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("crmphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// ValidPhone reports whether phone has an accepted shape.
// An empty phone is valid and means the customer has none.
func ValidPhone(phone string) bool {
	return validate.Var(phone, "omitempty,crmphone") == nil
}

// ErrNameEmailRequired is returned when a customer input lacks a name or an email.
var ErrNameEmailRequired = crmerr.Invalid("input", "Name and email are required")

func checkCustomerInput(in customer.CreateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return ErrNameEmailRequired
	}

	return nil
}
