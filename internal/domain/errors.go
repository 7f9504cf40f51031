package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrInactiveAccount = errors.New("cuenta inactiva")
	ErrTokenRevoked    = errors.New("token revocado")
	ErrNoRecords       = errors.New("no hay registros de inventario")
	ErrMailDelivery    = errors.New("no se pudo enviar el correo")
)

// DuplicateError indica qué campo único fue violado (nit, code, username, email).
// errors.Is(err, ErrDuplicate) es verdadero para cualquier DuplicateError.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "recurso duplicado: " + e.Field
}

// Is permite comparar contra ErrDuplicate.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// ValidationError agrupa mensajes de validación por campo (respuesta 400).
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError construye un error con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{Fields: map[string][]string{}}
	v.Add(field, msg)
	return v
}

// Add agrega un mensaje al campo indicado.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty informa si no hay errores acumulados.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite comparar contra ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
