package estimate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks a rate or fee outside its allowed domain.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Params are the user inputs of one estimate run.
type Params struct {
	StandardRate float64 `validate:"gte=0"`
	Multiplier   float64 `validate:"gte=0"`
	TargetFee    float64 `validate:"gte=0"` // 0 means no scaling
}

// BillingRate is the hourly rate charged: standard rate times multiplier.
func (p Params) BillingRate() float64 {
	return p.StandardRate * p.Multiplier
}

// Validate checks numeric bounds. NaN fails every bound; infinities and a
// billing rate that overflows are rejected separately.
func (p Params) Validate() error {
	if err := Struct(p); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"StandardRate", p.StandardRate},
		{"Multiplier", p.Multiplier},
		{"TargetFee", p.TargetFee},
		{"BillingRate", p.BillingRate()},
	} {
		if err := CheckAmount(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// CheckAmount rejects negative and non-finite values.
func CheckAmount(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite (got %v)", ErrInvalidInput, name, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0 (got %v)", ErrInvalidInput, name, v)
	}
	return nil
}

// Struct validates any struct carrying `validate` tags and folds failures
// into a single ErrInvalidInput.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must be %s %s (got %v)", fe.Field(), tagVerb(fe.Tag()), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func tagVerb(tag string) string {
	switch tag {
	case "gte":
		return ">="
	case "gt":
		return ">"
	case "lte":
		return "<="
	case "lt":
		return "<"
	}
	return tag
}
