package editor

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/platform"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	notBlankTag = "notblank"
	videoRefTag = "videoref"
	roleTag     = "role"
)

func init() {
	validate = validator.New()

	// English error messages
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report fields by their json names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(videoRefTag, videoRefValidation)
	_ = validate.RegisterValidation(roleTag, roleValidation)

	registerCustomValidationsTranslations(notBlankTag, videoRefTag, roleTag)
}

// registerCustomValidationsTranslations registers messages for the custom tags.
// The translator already holds the defaults, so registration itself is a no-op.
func registerCustomValidationsTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case videoRefTag:
		return "could not find a YouTube video in this link"
	case roleTag:
		return "role must be teacher or student"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func videoRefValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		_, found := platform.ExtractVideoID(str)
		return found
	}
	return false
}

func roleValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		_, err := model.ParseRole(str)
		return err == nil
	}
	return false
}

// ValidationError lists the rejected fields and a message for each
type ValidationError struct {
	Fields map[string]string
}

// Error joins the field messages in field order
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name])
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for one field, or ""
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// Validate checks a form and returns *ValidationError when it is rejected
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = fe.Translate(translator)
	}
	return out
}
