package main

import (
	"errors"
	"io/fs"

	"github.com/gorewood/compdocs/internal/docs"
	"github.com/gorewood/compdocs/internal/output"
)

// classify maps an error to the exit code it should produce.
//
//	duplicate definition in strict mode  -> conflict (3)
//	missing files, bad paths, templates  -> user error (1)
//	other file system failures           -> system error (2)
func classify(err error) *output.ExitError {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	switch {
	case errors.Is(err, docs.ErrDuplicateDefinition):
		return output.NewConflictError(err.Error(), err)
	case errors.Is(err, docs.ErrPathNotFound), errors.Is(err, fs.ErrNotExist):
		return output.NewUserErrorWithCause(err.Error(), err)
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return output.NewSystemError(err.Error(), err)
	}
	return output.NewUserErrorWithCause(err.Error(), err)
}

// fail prints err and returns it classified.
func fail(printer *output.Printer, err error) error {
	exitErr := classify(err)
	printer.Error(exitErr)
	return exitErr
}
