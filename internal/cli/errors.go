package cli

import "errors"

// ErrUsage marks errors caused by bad invocation (flags, config, missing
// input) so main can print them without a stack of wrapping and exit 2.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
