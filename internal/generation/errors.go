package generation

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingResult means the endpoint answered but carried no usable image reference.
	ErrMissingResult = errors.New("no image URL in response")

	// ErrMalformedBody is wrapped by a RequestError when the body is not JSON.
	ErrMalformedBody = errors.New("response body is not valid JSON")

	// ErrBodyTooLarge is wrapped by a RequestError when the body exceeds MaxBodyBytes.
	ErrBodyTooLarge = errors.New("response body too large")
)

// RequestError is returned when the generation call itself fails: transport
// error, non-success status, or an unparseable body.
type RequestError struct {
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation request %s failed (status %d): %v", e.URL, e.Status, e.Err)
	}
	if e.URL != "" {
		return fmt.Sprintf("generation request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("generation request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsRequestError checks if an error is a RequestError.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}
