package domain

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	// Report fields under their wire names so rejections line up with what
	// the caller sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return ValidMoney(fl.Field().Float())
	})
	return v
}

// ValidMoney reports whether v fits the monetary format shared by every cost
// field: at least 0.01, at most five significant digits with two decimal
// places, so 999.99 is the largest representable amount.
func ValidMoney(v float64) bool {
	if v < 0.01 || v > 999.99 {
		return false
	}
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

func structRejection(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return NewRejection(fieldErrors[0].Field(), ReasonInvalidField)
	}
	return err
}

// Validate runs the single record field checks on a property.
func (p *Property) Validate() error {
	return structRejection(validate.Struct(p))
}

// Validate runs the single record field checks on an advertisement.
func (a *Advertisement) Validate() error {
	return structRejection(validate.Struct(a))
}

// Validate runs the single record field checks on a reservation candidate.
// Date order and occupancy are the admission service's concern, not part of
// the per field checks here.
func (r *Reservation) Validate() error {
	return structRejection(validate.Struct(r))
}
