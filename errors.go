package extcheck

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/extcheck/blobstore"
	"github.com/hupe1980/extcheck/intern"
	"github.com/hupe1980/extcheck/resource"
	"github.com/hupe1980/extcheck/solution"
)

var (
	// ErrUsage is returned for invalid invocations, such as an unparseable
	// location or a scheme without a configured store.
	ErrUsage = errors.New("usage error")

	// ErrIO is returned when a solution source is missing or unreadable.
	ErrIO = errors.New("i/o error")

	// ErrParse is returned when a solution violates the bracket structure.
	ErrParse = errors.New("parse error")

	// ErrCapacity is returned when the argument space or the memory budget
	// is exhausted.
	ErrCapacity = errors.New("capacity exceeded")
)

// Exit codes of the extcheck command.
const (
	ExitOK       = 0
	ExitUsage    = 1
	ExitIO       = 2
	ExitParse    = 3
	ExitCapacity = 4
)

// Role names the side of a comparison a file belongs to.
type Role string

const (
	RoleReference Role = "reference"
	RoleCandidate Role = "candidate"
)

// FileError identifies the solution file a failure originated from.
//
// The translated cause can be inspected via errors.Is against the package
// sentinels and via errors.Unwrap.
type FileError struct {
	Role Role
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Role, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func fileError(role Role, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FileError{Role: role, Path: path, Err: translateError(err)}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Cancellation is reported as is.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, solution.ErrMalformed) || errors.Is(err, solution.ErrEmpty) {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	if errors.Is(err, intern.ErrCapacity) || errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrCapacity, err)
	}

	if errors.Is(err, blobstore.ErrInvalidURI) || errors.Is(err, blobstore.ErrUnsupportedScheme) {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return fmt.Errorf("%w: %w", ErrIO, err)
}

// ExitCode maps an error returned by Checker to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrParse):
		return ExitParse
	case errors.Is(err, ErrCapacity):
		return ExitCapacity
	default:
		return ExitIO
	}
}
