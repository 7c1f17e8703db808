package chat

import "fmt"

// ValidationError rejects empty or whitespace-only input. No state is
// mutated when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a persistence failure. The store never leaves a
// partially written turn visible.
type StorageError struct {
	Op    string // "append" | "read" | "clear"
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// CompletionError wraps a failed remote completion call. The upstream
// message is passed through verbatim.
type CompletionError struct {
	Cause error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Cause)
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}
