// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package omnifocus

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	apperrors "focusmcp/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails for empty tags or nil functions.
		_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// An optional entity reference is either empty or names something.
		_ = v.RegisterValidation("ref", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || strings.TrimSpace(s) != ""
		})
		_ = v.RegisterValidation("ofdate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// Decode converts raw tool arguments into a T and validates it. Every
// failure is a validation error.
func Decode[T any](raw map[string]any) (*T, error) {
	args := new(T)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           args,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "invalid arguments", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := dec.Decode(raw); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "invalid arguments", err)
	}
	if err := Validate(args); err != nil {
		return nil, err
	}
	return args, nil
}

// Validate checks the struct tags of args and reports every problem in one
// validation error.
func Validate(args any) error {
	err := validatorInstance().Struct(args)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Wrap(apperrors.CodeValidation, "invalid arguments", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.New(apperrors.CodeValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing required argument '%s'", field)
	case "nonblank":
		return fmt.Sprintf("argument '%s' must not be empty", field)
	case "ref":
		return fmt.Sprintf("argument '%s' must not be blank", field)
	case "oneof":
		return fmt.Sprintf("invalid value %q for '%s': must be one of %s",
			valueText(fe.Value()), field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "ofdate":
		return fmt.Sprintf("invalid date %q for '%s': use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339", valueText(fe.Value()), field)
	case "min":
		return fmt.Sprintf("argument '%s' must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("argument '%s' must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("argument '%s' failed %s validation", field, fe.Tag())
}

func valueText(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	return fmt.Sprint(rv.Interface())
}
