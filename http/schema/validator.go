package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/switchback-web/switchback"
)

var (
	valid       = newValid()
	formDecoder = newFormDecoder()
)

// newValid constructs the shared *v10.Validate, which applies default configuration.
//
// Issue paths use the field's json tag name when present,
// falling back to the schema tag.
func newValid() *v10.Validate {
	v := v10.New()
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = ""
		}

		if name == "" {
			name = strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
		}

		if name == "-" {
			name = ""
		}

		return name
	})

	return v
}

func newFormDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return dec
}

// Struct constructs the default Validator for T.
//
// Its SafeParse decodes the raw surface value into a fresh T -
// encoding/json for body bytes, gorilla/schema for query params,
// path params, and headers - then checks the "validate" struct tags with
// go-playground/validator. The normalized data returned on success is a T,
// so coercions performed during decoding (numeric strings into ints, and so on)
// are observable downstream.
func Struct[T any]() Validator {
	return structValidator[T]{}
}

type structValidator[T any] struct{}

func (sv structValidator[T]) SafeParse(value any) (any, []Issue, error) {
	out := new(T)

	switch src := value.(type) {
	case json.RawMessage:
		if issues, err := decodeJSON(src, out); issues != nil || err != nil {
			return nil, issues, err
		}

	case []byte:
		if issues, err := decodeJSON(src, out); issues != nil || err != nil {
			return nil, issues, err
		}

	case url.Values:
		if issues, err := decodeForm(src, out); issues != nil || err != nil {
			return nil, issues, err
		}

	case map[string]string:
		vals := make(url.Values, len(src))
		for k, v := range src {
			vals.Set(k, v)
		}

		if issues, err := decodeForm(vals, out); issues != nil || err != nil {
			return nil, issues, err
		}

	case http.Header:
		if issues, err := decodeForm(url.Values(src), out); issues != nil || err != nil {
			return nil, issues, err
		}

	case T:
		*out = src

	case *T:
		if src == nil {
			return nil, nil, fmt.Errorf("%w: SafeParse called with nil %T", switchback.ErrBadAny, src)
		}
		*out = *src

	default:
		return nil, nil, fmt.Errorf("%w: cannot parse %T into %T", switchback.ErrBadAny, value, *out)
	}

	if issues := check(out); len(issues) > 0 {
		return nil, issues, nil
	}

	return *out, nil, nil
}

// decodeJSON unmarshals raw into structPtr, treating absent bodies as empty objects.
func decodeJSON(raw []byte, structPtr any) ([]Issue, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	var ourFault *json.InvalidUnmarshalError
	err := json.Unmarshal(raw, structPtr)
	if errors.As(err, &ourFault) {
		return nil, fmt.Errorf("%w: decode target is not a pointer: %s", switchback.ErrBadAny, err)
	}

	if err != nil {
		return []Issue{{Message: fmt.Sprintf("malformed JSON: %s", err)}}, nil
	}

	return nil, nil
}

// decodeForm decodes key-value surface data into structPtr,
// translating gorilla/schema errors into Issues.
//
// Some decoder errors are issues with calling code and some are unexpected;
// those surface as errors rather than Issues.
func decodeForm(vals url.Values, structPtr any) ([]Issue, error) {
	err := formDecoder.Decode(structPtr, vals)
	if err == nil {
		return nil, nil
	}

	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return nil, fmt.Errorf("%w: %s", switchback.ErrBadFormat, err)
	}

	var issues []Issue
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			issues = append(issues, Issue{
				Path:    []string{err.Key},
				Message: "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return nil, fmt.Errorf(`%w: use the "required" validate tag, not schema`, switchback.ErrNotImplemented)

		case schema.UnknownKeyError:
			// unknown keys are accepted per the decoder configuration

		default:
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return nil, fmt.Errorf("%w: cannot convert values into unsupported type", switchback.ErrNotImplemented)
			}

			// the above covers the known struct-backed errors schema returns;
			// anything else is likely a programming error, surface it immediately
			return nil, fmt.Errorf("%w: %s", switchback.ErrUnexpected, err)
		}
	}

	return issues, nil
}

// check runs the "validate" struct tags against structPtr,
// translating each go-playground issue into an Issue
// whose path is the dotted namespace below the root struct.
func check(structPtr any) []Issue {
	err := valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return []Issue{{Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(errs))
	for _, ve := range errs {
		field := ve.Namespace()

		ns := strings.SplitN(field, ".", 2)
		if len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}

		issues = append(issues, Issue{
			Path:    strings.Split(field, "."),
			Message: fmt.Sprintf("value %q fails rule %q", fmt.Sprint(ve.Value()), rule),
		})
	}

	return issues
}

// validateEnumerable validates whether field is a valid Enumerable or slice of valid Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()

	if field.Kind() == reflect.Slice {
		vals := []reflect.Value{}
		for i := 0; i < field.Len(); i++ {
			vals = append(vals, field.Index(i))
		}

		return checkEnums(vals...)
	}

	return checkEnums(field)
}

// checkEnums asserts each [reflect.Value] is an Enumerable and valid.
func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		enum, ok := item.Interface().(switchback.Enumerable)
		if !ok {
			return false
		}

		if err := enum.Valid(); err != nil {
			return false
		}
	}

	return true
}
