package upstream

import "fmt"

// errorEnvelope is the machine-readable error body the platform API returns
// on non-2xx responses. Both fields are optional.
type errorEnvelope struct {
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
}

// APIError is a failed platform API call: the HTTP status, the message from
// the error envelope (or raw body text), and the correlation id linking the
// call to upstream logs.
type APIError struct {
	StatusCode    int
	Message       string
	CorrelationID string
}

func (e *APIError) Error() string {
	if e.CorrelationID != "" {
		return fmt.Sprintf("%s (correlation id: %s)", e.Message, e.CorrelationID)
	}
	return e.Message
}

// IsAPIError unwraps an *APIError if err is one.
func IsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}
