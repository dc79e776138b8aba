package smartsuite

import "fmt"

// maxErrorBody is the number of response-body characters kept on an APIError.
const maxErrorBody = 500

// APIError indicates SmartSuite answered with a non-success status.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Op, e.StatusCode, e.Body)
}

// newAPIError builds an APIError, keeping only the first 500 characters of the body.
func newAPIError(op string, statusCode int, body []byte) *APIError {
	return &APIError{
		Op:         op,
		StatusCode: statusCode,
		Body:       truncate(string(body), maxErrorBody),
	}
}

// TransportError indicates the request never produced an HTTP response
// (connection failure, timeout, cancelled context).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
