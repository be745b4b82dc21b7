package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/entitree/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1   // rendering or output failed
	ExitUsage       = 2   // bad flags, config or scene content
	ExitNotFound    = 3   // scene file or entity does not exist
	ExitInterrupted = 130 // SIGINT, shell convention
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidScene,
		errors.ErrCodeInvalidEntity, errors.ErrCodeInvalidPath:
		return ExitUsage
	case errors.ErrCodeFileNotFound, errors.ErrCodeEntityNotFound:
		return ExitNotFound
	}
	return ExitFailure
}

// ErrorMessage formats err for the terminal, without error codes.
func ErrorMessage(err error) string {
	return "Error: " + errors.UserMessage(err)
}
