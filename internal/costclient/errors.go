package costclient

import "fmt"

// BackendError reports a transport failure or a non-200 answer from the cost
// service. Body holds the raw response body, or the transport error text when
// no response was received.
type BackendError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("cost service unreachable: %s", e.Body)
	}
	return fmt.Sprintf("cost service returned status %d: %s", e.StatusCode, e.Body)
}

func (e *BackendError) Unwrap() error { return e.Err }

// MalformedResponseError reports a 200 answer whose body is not a valid
// forecast: bad JSON or a missing key.
type MalformedResponseError struct {
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed forecast response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
