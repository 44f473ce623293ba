package luis

import "fmt"

// ConfigError reports a model configuration missing a required field.
// It is returned before any network call is made.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return "luis: model configuration missing " + e.Field
}

// UnsupportedVersionError reports an API version outside the known set.
type UnsupportedVersionError struct {
	Version APIVersion
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("luis: unsupported API version %q", string(e.Version))
}

// HTTPError is returned when the upstream responds with a non-2xx status.
// The body is not parsed in that case.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("luis: upstream returned HTTP %d", e.StatusCode)
}

// ParseError wraps a response body that is not valid JSON or does not
// match the expected result shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "luis: decoding response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
