package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/idilsaglam/tada/internal/datekey"
	"github.com/idilsaglam/tada/internal/model"
)

type inputValidator struct {
	validate *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New()
	_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return datekey.Valid(fl.Field().String())
	})
	return &inputValidator{validate: v}
}

// text trims s and rejects it when nothing is left.
func (iv *inputValidator) text(s string) (string, error) {
	s = strings.TrimSpace(s)
	return s, iv.field("text", s, "required")
}

func (iv *inputValidator) goal(n int) error { return iv.field("goal", n, "gte=1") }

// dueDate accepts "" (no due date) or a valid key.
func (iv *inputValidator) dueDate(key string) error {
	return iv.field("dueDate", key, "omitempty,datekey")
}

func (iv *inputValidator) day(key string) error { return iv.field("date", key, "required,datekey") }

// field runs tag against value and converts a failure into a
// *model.ValidationError naming field.
func (iv *inputValidator) field(name string, value any, tag string) error {
	err := iv.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &model.ValidationError{Field: name, Err: err}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &model.ValidationError{Field: name, Err: errors.New("must not be empty")}
	case "gte":
		return &model.ValidationError{Field: name, Err: fmt.Errorf("must be a positive integer, got %v", fe.Value())}
	case "datekey":
		_, perr := datekey.Parse(fmt.Sprint(fe.Value()))
		return &model.ValidationError{Field: name, Err: perr}
	default:
		return &model.ValidationError{Field: name, Err: fmt.Errorf("failed %q check", fe.Tag())}
	}
}
