package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
)

// PhoneDigits is the number of digits a delivery phone must carry.
const PhoneDigits = 10

var (
	looseEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitPattern   = regexp.MustCompile(`\D`)

	detailsValidator = newDetailsValidator()
)

// DeliveryDetails is the customer block of a checkout.
type DeliveryDetails struct {
	FirstName           string `json:"firstName" checkout:"required"`
	LastName            string `json:"lastName" checkout:"required"`
	Email               string `json:"email" checkout:"omitempty,looseemail"`
	Phone               string `json:"phone" checkout:"required,phone"`
	Address             string `json:"address" checkout:"required"`
	City                string `json:"city" checkout:"required"`
	ZipCode             string `json:"zipCode" checkout:"required"`
	SpecialInstructions string `json:"specialInstructions"`
}

func newDetailsValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("checkout")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return len(NormalizePhone(fl.Field().String())) == PhoneDigits
	})
	return v
}

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	return nonDigitPattern.ReplaceAllString(phone, "")
}

func (d DeliveryDetails) trimmed() DeliveryDetails {
	return DeliveryDetails{
		FirstName:           strings.TrimSpace(d.FirstName),
		LastName:            strings.TrimSpace(d.LastName),
		Email:               strings.TrimSpace(d.Email),
		Phone:               strings.TrimSpace(d.Phone),
		Address:             strings.TrimSpace(d.Address),
		City:                strings.TrimSpace(d.City),
		ZipCode:             strings.TrimSpace(d.ZipCode),
		SpecialInstructions: strings.TrimSpace(d.SpecialInstructions),
	}
}

// Validate reports every failing field, keyed by its JSON name.
func (d DeliveryDetails) Validate() error {
	err := detailsValidator.Struct(d.trimmed())
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery details")
	}
	fields := pkgerrors.FieldErrors{}
	for _, fe := range errs {
		fields["customer."+fe.Field()] = fieldMessage(fe)
	}
	return pkgerrors.Validation("invalid delivery details", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "looseemail":
		return "must be a valid email"
	case "phone":
		return "must contain exactly 10 digits"
	}
	return "is invalid"
}

// CustomerName joins first and last name.
func (d DeliveryDetails) CustomerName() string {
	return strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
}

// DeliveryAddress renders "Address, City, Zip".
func (d DeliveryDetails) DeliveryAddress() string {
	t := d.trimmed()
	return t.Address + ", " + t.City + ", " + t.ZipCode
}
