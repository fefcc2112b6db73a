package session

import (
	"errors"
	"fmt"

	"github.com/sant0-9/divimap/internal/intent"
	"github.com/sant0-9/divimap/internal/mapview"
)

// StatusKind selects the banner color.
type StatusKind string

const (
	StatusSuccess    StatusKind = "success"
	StatusError      StatusKind = "error"
	StatusProcessing StatusKind = "processing"
	StatusInfo       StatusKind = "info"
)

// Status is the one-line message shown to the user.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

var (
	StatusReady    = Status{StatusInfo, "Escriba una instrucción"}
	StatusWorking  = Status{StatusProcessing, "Procesando instrucción..."}
	StatusCleared  = Status{StatusSuccess, "Selección limpiada"}
	StatusCentered = Status{StatusSuccess, "Vista centrada en la coordenada"}
	StatusNoInput  = Status{StatusError, "Por favor ingrese una instrucción"}
	StatusBusy     = Status{StatusProcessing, "Ya hay una instrucción en proceso"}
	StatusGeneric  = Status{StatusError, "Error al procesar instrucción"}
)

// StatusSelected reports how many features a filter picked.
func StatusSelected(n int) Status {
	return Status{StatusSuccess, fmt.Sprintf("%d elementos seleccionados", n)}
}

// StatusFor maps a Submit error to the message shown to the user.
func StatusFor(err error) Status {
	var (
		te  *intent.TransportError
		ee  *intent.EmptyResponseError
		pe  *intent.ParseError
		se  *intent.SchemaError
		ure *mapview.UnsupportedReferenceError
	)
	switch {
	case err == nil:
		return StatusReady
	case errors.Is(err, intent.ErrEmptyInstruction):
		return StatusNoInput
	case errors.Is(err, ErrBusy):
		return StatusBusy
	case errors.As(err, &te):
		if te.Timeout() {
			return Status{StatusError, "Error al procesar instrucción: el servicio tardó demasiado"}
		}
		if te.Status != 0 {
			return Status{StatusError, fmt.Sprintf("Error al procesar instrucción: el servicio respondió %d", te.Status)}
		}
		return Status{StatusError, "Error al procesar instrucción: no se pudo contactar el servicio"}
	case errors.As(err, &ee):
		return Status{StatusError, "Error al procesar instrucción: respuesta vacía"}
	case errors.As(err, &pe):
		return Status{StatusError, "Error al procesar instrucción: la respuesta no es JSON válido"}
	case errors.As(err, &ure):
		return Status{StatusError, fmt.Sprintf("Error al procesar instrucción: EPSG:%d no soportado", ure.EPSG)}
	case errors.As(err, &se):
		return Status{StatusError, "Error al procesar instrucción: respuesta con formato inesperado"}
	default:
		return StatusGeneric
	}
}

// ErrorKind is a short stable label for err, used in logs and metrics.
func ErrorKind(err error) string {
	var (
		te  *intent.TransportError
		ee  *intent.EmptyResponseError
		pe  *intent.ParseError
		se  *intent.SchemaError
		ure *mapview.UnsupportedReferenceError
	)
	switch {
	case errors.Is(err, intent.ErrEmptyInstruction):
		return "empty_instruction"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.As(err, &te):
		if te.Timeout() {
			return "timeout"
		}
		return "transport_error"
	case errors.As(err, &ee):
		return "empty_response"
	case errors.As(err, &pe):
		return "parse_error"
	case errors.As(err, &ure):
		return "unsupported_reference"
	case errors.As(err, &se):
		return "schema_error"
	default:
		return "error"
	}
}
