package domain

// ValidationError reports malformed or disallowed input detected
// before any external call is made. It is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
