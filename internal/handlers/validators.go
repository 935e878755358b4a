package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Account numbers and CIFs share the column width of the schema.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,20}$`)

func validIdentifier(fl validator.FieldLevel) bool {
	return identifierPattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the accno and cif binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("accno", validIdentifier); err != nil {
		return err
	}
	return v.RegisterValidation("cif", validIdentifier)
}
