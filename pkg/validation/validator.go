// Package validation valida DTOs con go-playground/validator v10.
// Expone una instancia única (thread-safe) con el tag personalizado "cpf"
// y traduce los errores a un conjunto tipado de errores por campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Biblioteca-api/pkg/cpf"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describe un campo que no pasó la validación.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Errors es el conjunto de errores de una petición.
type Errors []FieldError

// Error implementa error concatenando los mensajes.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validación fallida"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Get devuelve la instancia única del validador.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Nombres de campo según el tag json, como los ve el cliente.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return cpf.Validate(fl.Field().String()) == nil
		})
	})
	return validate
}

// Struct valida s. Devuelve nil o Errors.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}
	out := make(Errors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: translate(fe)}
	}
	return out
}

var messages = map[string]string{
	"required": "%s es requerido",
	"email":    "%s debe ser un email válido",
	"url":      "%s debe ser una URL válida",
	"uuid":     "%s debe ser un UUID",
	"cpf":      "%s no es un CPF válido",
}

func translate(fe validator.FieldError) string {
	if tpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tpl, fe.Field())
	}
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s debe ser al menos %s", fe.Field(), fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s debe tener como máximo %s caracteres", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s debe ser como máximo %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s no cumple la validación %s", fe.Field(), fe.Tag())
}
