// Package bind provides request binding and validation helpers for handlers
package bind

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	perr "combatlog/internal/platform/errors"
	"combatlog/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

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

		// prefer json tag names in messages, path and query names for bound params
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "path", "query"} {
				tag := fld.Tag.Get(key)
				if tag == "" || tag == "-" {
					continue
				}
				if idx := strings.Index(tag, ","); idx >= 0 {
					tag = tag[:idx]
				}
				return tag
			}
			return fld.Name
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerShortMax(v, trans)

		_ = v.RegisterValidation("date_id", validDateID)
		_ = v.RegisterValidation("hex_key", validHexKey)
		registerMessage(v, trans, "date_id", "{0} must be a YYYY-MM-DD date")
		registerMessage(v, trans, "hex_key", "{0} must be a hex encoded key")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// RegisterValidation registers a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
		AllowEmptyBody:  false,
	}
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var reader io.Reader = r.Body
	if !o.AllowEmptyBody {
		buf := make([]byte, 1)
		n, _ := r.Body.Read(buf)
		if n == 0 {
			switch r.Method {
			case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
				return zero, nil
			}
			return zero, perr.JSONErrf("empty body")
		}
		reader = io.MultiReader(bytes.NewReader(buf[:n]), r.Body)
	}
	if o.MaxBytes > 0 {
		reader = io.LimitReader(reader, o.MaxBytes)
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Params fills string fields of T from chi path params (`path:"name"`) and
// query values (`query:"name"`), then validates T
func Params[T any](r *http.Request) (T, error) {
	var zero T
	rv := reflect.New(reflect.TypeOf((*T)(nil)).Elem()).Elem()
	if rv.Kind() != reflect.Struct {
		return zero, perr.Internalf("params target must be a struct")
	}
	rt := rv.Type()
	q := r.URL.Query()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" || f.Type.Kind() != reflect.String {
			continue
		}
		if name := f.Tag.Get("path"); name != "" {
			rv.Field(i).SetString(chi.URLParam(r, name))
		} else if name := f.Tag.Get("query"); name != "" {
			rv.Field(i).SetString(q.Get(name))
		}
	}
	dst := rv.Interface().(T)
	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

func validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
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
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

func validDateID(fl FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(time.DateOnly) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func validHexKey(fl FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
}
