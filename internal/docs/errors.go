package docs

import "errors"

var (
	// ErrPathNotFound is returned when the output path is not an existing directory.
	ErrPathNotFound = errors.New("output path not found")

	// ErrDuplicateDefinition is returned in strict mode when a component
	// name is defined more than once.
	ErrDuplicateDefinition = errors.New("duplicate component definition")

	// ErrInvalidName is returned when a component name cannot be used as a file name.
	ErrInvalidName = errors.New("invalid component name")
)
