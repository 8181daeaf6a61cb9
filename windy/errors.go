package windy

import "fmt"

// StatusError is a non-2xx reply from the forecast endpoint. It is
// surfaced as-is; the client never retries.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("windy API error: status %d: %s", e.Code, e.Body)
}

// DecodeError wraps a 2xx response body that is not valid JSON or is
// missing a required field.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode forecast response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
