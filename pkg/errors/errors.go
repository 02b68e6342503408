package errors

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest      = fmt.Errorf("solicitud inválida")
	ErrReadOnlySource  = fmt.Errorf("la fuente de datos actual no es la BD principal")
	ErrItemNotSelected = fmt.Errorf("no hay una máquina seleccionada")
	ErrSessionNotFound = fmt.Errorf("sesión no encontrada en el contexto")
)

// HttpError is returned by handlers and rendered by utils.ErrorResponse.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// RemoteKind classifies a failed call to the inventory API.
type RemoteKind string

const (
	KindNetwork    RemoteKind = "network"
	KindValidation RemoteKind = "validation"
	KindNotFound   RemoteKind = "not_found"
	KindServer     RemoteKind = "server"
	KindDecode     RemoteKind = "decode"
)

// RemoteError is every failure produced by the inventory API client.
type RemoteError struct {
	Kind   RemoteKind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RemoteError) Unwrap() error { return e.Err }

// KindFromStatus maps an upstream HTTP status onto a RemoteKind.
func KindFromStatus(status int) RemoteKind {
	switch {
	case status == 404:
		return KindNotFound
	case status == 400 || status == 409 || status == 422:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

var kindLabels = map[RemoteKind]string{
	KindNetwork:    "sin conexión con el servidor",
	KindValidation: "datos inválidos",
	KindNotFound:   "no encontrado",
	KindServer:     "error del servidor",
	KindDecode:     "respuesta inesperada del servidor",
}

// Detail returns the server-provided detail of err, if any.
func Detail(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Detail
	}
	return ""
}

// Describe renders err as a short user-facing cause.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		label, ok := kindLabels[remote.Kind]
		if !ok {
			label = string(remote.Kind)
		}
		if remote.Detail != "" {
			return label + ": " + remote.Detail
		}
		return label
	}
	return err.Error()
}

// WithCause appends the described cause of err to a user message.
func WithCause(message string, err error) string {
	cause := Describe(err)
	if cause == "" {
		return message
	}
	return fmt.Sprintf("%s (causa: %s)", message, cause)
}

// IsKind reports whether err is a RemoteError of the given kind.
func IsKind(err error, kind RemoteKind) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Kind == kind
}
