package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	phonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

var (
	// trans translates errors from the service-layer engine.
	trans ut.Translator
	// bindTrans translates errors from Gin's binding engine.
	bindTrans ut.Translator
	// validate is the engine used by the service layer.
	validate *govalidator.Validate
	once     sync.Once
)

// FieldError is the first failing field of a validated struct.
type FieldError struct {
	Field   string
	Message string
}

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	once.Do(func() {
		validate = govalidator.New(govalidator.WithRequiredStructEnabled())
		trans = configure(validate)

		if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
			bindTrans = configure(v)
		}
	})
}

// configure applies tag naming, custom rules and translations to an engine.
// Each engine gets its own translator; translations cannot be registered
// twice on the same one.
func configure(v *govalidator.Validate) ut.Translator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	t, _ := uni.GetTranslator("en")

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl govalidator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("digits", func(fl govalidator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})

	_ = en_translations.RegisterDefaultTranslations(v, t)
	registerTranslation(v, t, "phone", "{0} must be exactly 10 digits")
	registerTranslation(v, t, "digits", "{0} must contain digits only")
	return t
}

func registerTranslation(v *govalidator.Validate, t ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, t,
		func(tr ut.Translator) error {
			return tr.Add(tag, text, true)
		},
		func(tr ut.Translator, fe govalidator.FieldError) string {
			msg, err := tr.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// First validates dst and returns the first failing field in declaration
// order, or nil when dst is valid. Only one rule is reported per field.
func First(dst interface{}) *FieldError {
	Setup()

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &FieldError{Field: ve[0].Field(), Message: ve[0].Translate(trans)}
	}
	return &FieldError{Field: "detail", Message: err.Error()}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(bindTrans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// TrimStrings trims surrounding whitespace from every exported string field
// of the struct pointed to by dst.
func TrimStrings(dst interface{}) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
