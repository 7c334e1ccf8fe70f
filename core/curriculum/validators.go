package curriculum

import (
	"reflect"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/raihan7913/devsecop-sub001/core"
)

var (
	// custom validation tags & texts
	phaseTag  = "phase"
	phaseText = "phase must be one of A, B or C"
)

// InitValidators registers the curriculum validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(phaseTag, phaseValidation)
	core.RegisterCustomTranslation(validate, translator, phaseTag, phaseText)
}

func phaseValidation(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, valid := ParsePhase(fl.Field().String())
	return valid
}
