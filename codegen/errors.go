package codegen

import "fmt"

// Error is a codegen failure. Per spec.md S7 these are string-typed
// rather than a rich taxonomy: the generator stops at the first one.
type Error struct {
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func errorf(format string, args ...any) error {
	return Error{Message: fmt.Sprintf(format, args...)}
}
