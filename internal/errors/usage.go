package errors

import "errors"

// Configuration is raised at setup time when a component is wired incorrectly,
// e.g. a results template is missing or declared twice. It is not recoverable.
type Configuration struct {
	base
}

// Error returns the error message for Configuration.
func (c Configuration) Error() string {
	return c.error()
}

// Unwrap returns the wrapped cause, if any.
func (c Configuration) Unwrap() error {
	return c.unwrap()
}

// NewConfiguration creates a new Configuration error with the provided message.
func NewConfiguration(message string, err ...error) Configuration {
	return Configuration{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotImplemented is returned when a capability is invoked on a component
// that was built without a concrete implementation for it.
type NotImplemented struct {
	base
}

// Error returns the error message for NotImplemented.
func (n NotImplemented) Error() string {
	return n.error()
}

// NewNotImplemented creates a new NotImplemented error for the named method.
func NewNotImplemented(method string) NotImplemented {
	return NotImplemented{
		base: base{
			message: "method " + method + " is not implemented",
		},
	}
}
