package api

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is a non-2xx response. Message is already normalized for display.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

// NetworkError is a transport-level failure (DNS, refused connection, timeout, cancel).
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == http.StatusNotFound
}

// Detail is the text surfaced to users for err.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return err.Error()
}
