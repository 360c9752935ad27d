package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind clasifica un error según cómo se le muestra al usuario.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindServer        Kind = "server"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindNetwork       Kind = "network"
	KindUnauthorized  Kind = "unauthorized"
)

// Mensajes genéricos (la app original está en español).
const (
	MsgNetwork      = "No se pudo conectar con el servidor. Revisá tu conexión."
	MsgUnauthorized = "Tu sesión expiró. Iniciá sesión nuevamente."
	MsgQuota        = "Alcanzaste el límite mensual de análisis con IA."
	MsgInternal     = "Ocurrió un error inesperado."
)

// QuotaExceededCode es el código que manda el backend cuando se agota el cupo de IA.
const QuotaExceededCode = "QUOTA_EXCEEDED"

var (
	ErrValidation    = errors.New("validation failed")
	ErrQuotaExceeded = errors.New("ai quota exceeded")
	ErrNetwork       = errors.New("backend unreachable")
	ErrUnauthorized  = errors.New("unauthorized")
)

// Error es el error tipado que cruza capas (adapter -> service -> handler).
type Error struct {
	Kind    Kind
	Status  int    // status HTTP del backend; 0 si no hubo respuesta
	Message string // texto listo para mostrar
	Field   string // solo validación
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status=%d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrValidation) etc. sobre *Error.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrQuotaExceeded:
		return e.Kind == KindQuotaExceeded
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	}
	return false
}

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

func Server(status int, msg string) *Error {
	if msg == "" {
		msg = fmt.Sprintf("Error %d", status)
	}
	return &Error{Kind: KindServer, Status: status, Message: msg}
}

func Quota(status int, msg string) *Error {
	if msg == "" {
		msg = MsgQuota
	}
	return &Error{Kind: KindQuotaExceeded, Status: status, Message: msg}
}

func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = MsgUnauthorized
	}
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

// KindOf devuelve el Kind de err; errores desconocidos cuentan como server.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindServer
}
