// Package validation turns gin binding errors into per-field messages.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"urbantide.com/store/internal/shared/apperr"
)

type FieldErrors map[string]string

// FromBindError maps validator errors to field -> message, keyed by the
// json or form tag of dst (a pointer to the bound struct).
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(dst, fe.StructField())] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	out["_"] = "Dados inválidos."
	return out
}

// BindErr wraps a binding failure as an invalid-input AppError.
func BindErr(err error, dst any) error {
	return apperr.InvalidErr("Verifique os campos destacados.", FromBindError(err, dst)).WithErr(err)
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	for _, key := range []string{"json", "form"} {
		tag, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return strings.ToLower(structField)
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "Campo obrigatório."
	case "email":
		return "Informe um e-mail válido."
	case "min":
		return "Mínimo de " + param + " caracteres."
	case "max":
		return "Máximo de " + param + " caracteres."
	case "eqfield":
		return "Os valores não conferem."
	default:
		return "Valor inválido."
	}
}
