package student

import (
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/bursary/core"
)

var (
	matriculeTag   = "matricule"
	matriculeText  = "{0} may only contain 3 to 32 uppercase letters, digits and dashes"
	matriculeRegex = regexp.MustCompile(`^[A-Z0-9-]{3,32}$`)
)

// InitValidators registers the student validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(matriculeTag, matriculeValidation)
	core.RegisterCustomTranslation(validate, translator, matriculeTag, matriculeText)
}

func matriculeValidation(fl validator.FieldLevel) bool {
	return matriculeRegex.MatchString(fl.Field().String())
}

func cleanMatricule(m string) string {
	return strings.ToUpper(core.CleanString(m))
}
