package cargo

import "fmt"

// Envelope is the uniform result wrapper returned by every operation.
// Exactly one of Data and Error is populated, except for operations
// that attach a diagnostic payload to failures (test, run, tarpaulin)
// so callers can see partial results.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	RunID   string `json:"run_id,omitempty"`
}

func succeed[T any](data *T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

func fail[T any](format string, args ...any) Envelope[T] {
	return Envelope[T]{Error: fmt.Sprintf(format, args...)}
}

// failWith is the documented exception to the data-xor-error rule:
// a failure envelope that still carries a diagnostic payload.
func failWith[T any](data *T, format string, args ...any) Envelope[T] {
	return Envelope[T]{Data: data, Error: fmt.Sprintf(format, args...)}
}

// rescue converts a panic anywhere in an operation into a failure
// envelope, so nothing propagates as an unhandled fault to the caller.
func rescue[T any](env *Envelope[T]) {
	if r := recover(); r != nil {
		*env = fail[T]("internal error: %v", r)
	}
}
