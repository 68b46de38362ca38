// Package bind provides body decoding and validation helpers for handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "leadintake/internal/platform/errors"
	"leadintake/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce    sync.Once
	vSvc     *ValidatorSvc
	jsonMore = func(dec *json.Decoder) bool { return dec.More() } // seam
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// submitter facing wording
		registerShort(v, trans, "required", "{0} is required")
		registerShort(v, trans, "email", "{0} must be a valid email address")
		registerShort(v, trans, "min", "{0} must be at least {1} characters")
		registerShort(v, trans, "max", "{0} must be at most {1} characters")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// Struct validates v by its tags and maps the first failure to a validation error
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Internalf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// Field validates a single value against tag, naming it in the message
// Rules whose parameters come from configuration (e.g. "min=%d") go through here
func Field(name string, value any, tag string) error {
	err := Get().Validator.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		logger.Get().Error().Err(err).Str("tag", tag).Msg("validator internal error")
		return perr.Internalf("validation error")
	}
	fe := verrs[0]
	msg, terr := Get().Translator.T(fe.Tag(), name, fe.Param())
	if terr != nil {
		msg = name + " is invalid"
	}
	return perr.WithField(perr.Validationf("%s", msg), name)
}

// JSONOptions controls decoding behavior
type JSONOptions struct {
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DecodeJSON decodes body into T without validating it
func DecodeJSON[T any](body []byte, o JSONOptions) (T, error) {
	var dst T
	if len(bytes.TrimSpace(body)) == 0 {
		if o.AllowEmptyBody {
			return dst, nil
		}
		return dst, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var zero T
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "invalid JSON body")
	}
	if jsonMore(dec) {
		var zero T
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	return dst, nil
}

// ReadBody drains r.Body up to max bytes; larger bodies are a validation error
func ReadBody(w http.ResponseWriter, r *http.Request, max int64) ([]byte, error) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("failed to close request body")
		}
	}()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, max))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, perr.Validationf("request body too large")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "unreadable request body")
	}
	return body, nil
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return "", inv.Error()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), fe.Translate(Get().Translator)
	}
	return "", err.Error()
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error { return ut.Add(tag, text, true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
