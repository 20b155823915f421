package contract

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// messages overrides the stock English translations for the rules ContactInput uses.
var messages = map[string]string{
	"required": "{0} is required",
	"email":    "Invalid email address",
	"max":      "{0} must be at most {1} characters",
}

var validate, translator = newValidator()

func newValidator() (*validator.Validate, ut.Translator) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	tr, _ := ut.New(locale, locale).GetTranslator(locale.Locale())
	_ = entranslations.RegisterDefaultTranslations(v, tr)
	for tag, text := range messages {
		registerMessage(v, tr, tag, text)
	}
	return v, tr
}

func registerMessage(v *validator.Validate, tr ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, tr,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, label(fe.Field()), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// Validate checks in against the ContactInput rules and returns the first
// violation, or nil. Fields are checked in declaration order (name, email,
// message) and each field stops at its first failing rule, so the result is
// deterministic for a given input.
func Validate(in ContactInput) *FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FieldError{Message: err.Error()}
	}
	fe := verrs[0]
	return &FieldError{Field: fieldPath(fe), Message: fe.Translate(translator)}
}

// fieldPath drops the struct name from the validator namespace:
// "ContactInput.email" becomes "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func label(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
