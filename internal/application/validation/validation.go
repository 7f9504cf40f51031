// Package validation envuelve go-playground/validator con los nombres de campo JSON
// y convierte las violaciones en *domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"

	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator devuelve la instancia compartida (segura para uso concurrente).
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("currency_map", validateCurrencyMap)
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return entity.ValidRole(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Struct valida s y devuelve *domain.ValidationError con los mensajes por campo, o nil.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range ves {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "este campo es obligatorio"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("mínimo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "email":
		return "correo electrónico inválido"
	case "role":
		return fmt.Sprintf("rol inválido: use %s o %s", entity.RoleAdmin, entity.RoleExternal)
	case "currency_map":
		return "precio inválido: se espera un mapa no vacío de códigos ISO 4217 a montos no negativos"
	default:
		return "valor inválido"
	}
}

func validateCurrencyMap(fl validator.FieldLevel) bool {
	prices, ok := fl.Field().Interface().(entity.Prices)
	if !ok {
		return false
	}
	return len(CheckPrices(prices)) == 0
}

// CheckPrices devuelve los problemas encontrados en un mapa de precios (vacío = válido).
func CheckPrices(prices entity.Prices) []string {
	if len(prices) == 0 {
		return []string{"el mapa de precios no puede estar vacío"}
	}
	var problems []string
	for code, amount := range prices {
		if len(code) != 3 || strings.ToUpper(code) != code {
			problems = append(problems, fmt.Sprintf("%q no es un código de moneda ISO 4217", code))
			continue
		}
		if _, err := currency.ParseISO(code); err != nil {
			problems = append(problems, fmt.Sprintf("%q no es un código de moneda ISO 4217", code))
			continue
		}
		if amount.IsNegative() {
			problems = append(problems, fmt.Sprintf("el monto para %s no puede ser negativo", code))
		}
	}
	return problems
}
