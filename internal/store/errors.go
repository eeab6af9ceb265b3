package store

import "fmt"

// TransportError is a store rejection carrying the HTTP-style status the
// page-level error display renders. It must propagate to callers unchanged.
type TransportError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
}

func (e *TransportError) Error() string {
	return e.Message
}

// NewTransportError builds a transport error with the conventional
// French message, e.g. "Erreur 404".
func NewTransportError(status int) *TransportError {
	return &TransportError{
		Message: fmt.Sprintf("Erreur %d", status),
		Status:  status,
	}
}
