package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"urbantide.com/store/internal/shared/apperr"
)

type signupInput struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `form:"senha" validate:"required,min=6"`
}

func TestFromBindError(t *testing.T) {
	in := signupInput{Email: "nope", Password: "123"}
	err := validator.New().Struct(&in)

	fields := FromBindError(err, &in)
	assert.Equal(t, FieldErrors{
		"email": "Informe um e-mail válido.",
		"senha": "Mínimo de 6 caracteres.",
	}, fields)

	assert.Equal(t, FieldErrors{"_": "Dados inválidos."}, FromBindError(errors.New("EOF"), &in))
}

func TestBindErrIsInvalid(t *testing.T) {
	in := signupInput{}
	err := BindErr(validator.New().Struct(&in), &in)
	ae, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Contains(t, ae.Fields, "email")
}
