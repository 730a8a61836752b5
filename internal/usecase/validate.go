package usecase

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	}); err != nil {
		panic(err)
	}
	return v
}

// failedTags returns the validation tags that failed, keyed by tag.
// A non-validation error is returned unchanged.
func failedTags(err error) (map[string]bool, error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	tags := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		tags[fe.Tag()] = true
	}
	return tags, nil
}
