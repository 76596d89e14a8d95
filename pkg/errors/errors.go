package errors

import (
	"net/http"

	"github.com/EzraHwang/BTSBackoffice/pkg/status"
)

// ApplicationError carries the HTTP status code and status keyword alongside
// the message, so handlers can translate any error into a response envelope.
type ApplicationError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func New(httpStatusCode int, status string, message string) error {
	return &ApplicationError{
		HTTPStatusCode: httpStatusCode,
		Status:         status,
		Message:        message,
	}
}

// Destruct exposes an error's application properties. Errors that did not
// originate from this package are treated as internal server errors.
func Destruct(err error) *ApplicationError {
	if ae, ok := err.(*ApplicationError); ok {
		return ae
	}

	return &ApplicationError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        err.Error(),
	}
}
