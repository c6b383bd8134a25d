package result

// Result is the discriminated outcome of an operation:
// either ok with a value, or failed with a kind and message.
// Warnings report best-effort side operations that failed without
// affecting the primary outcome.
type Result[T any] struct {
	OK       bool     `json:"ok"`
	Value    T        `json:"value,omitempty"`
	Kind     Kind     `json:"kind,omitempty"`
	Message  string   `json:"message,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func Ok[T any](value T, warnings ...string) Result[T] {
	return Result[T]{OK: true, Value: value, Warnings: warnings}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{OK: false, Kind: KindOf(err), Message: PublicMessage(err)}
}

// Err converts a failed result back into an error.
func (r Result[T]) Err() error {
	if r.OK {
		return nil
	}
	return New(r.Kind, r.Message)
}
