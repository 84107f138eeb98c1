package domain

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	// KindTransport: the request never completed.
	KindTransport ErrorKind = iota + 1
	// KindStatus: the server answered with a non-2xx status.
	KindStatus
	// KindDecode: the response body was not the expected JSON.
	KindDecode
	// KindValidation: the draft was rejected before any request was made.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is the single failure type operations surface to a screen.
type Error struct {
	Kind    ErrorKind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func ValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// UserMessage is the one line shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "Operación cancelada."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "El servidor tardó demasiado en responder."
	}
	var de *Error
	if !errors.As(err, &de) {
		return "No se pudo completar la operación."
	}
	switch de.Kind {
	case KindValidation, KindStatus:
		if de.Message != "" {
			return de.Message
		}
		return fmt.Sprintf("La solicitud falló. Estado: %d", de.Status)
	case KindTransport:
		return "No se pudo conectar con el servidor."
	case KindDecode:
		return "El servidor envió una respuesta inválida."
	}
	return "No se pudo completar la operación."
}
