package combo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Noziop/mkdf/internal/services"
)

// ErrMultipleDatabases is returned when a selection names more than one
// database engine.
var ErrMultipleDatabases = errors.New("only one database per project is supported")

// MultipleDatabasesError lists the competing engines.
type MultipleDatabasesError struct {
	Databases []string
}

func (e *MultipleDatabasesError) Error() string {
	return fmt.Sprintf("%s (got %s)", ErrMultipleDatabases, strings.Join(e.Databases, ", "))
}

func (e *MultipleDatabasesError) Unwrap() error {
	return ErrMultipleDatabases
}

// ErrMultipleComponents is returned when a selection names more than one
// backend or more than one frontend. Each would claim the same host port,
// container name and build directory.
var ErrMultipleComponents = errors.New("only one component per category is supported")

// MultipleComponentsError lists the competing components of one category.
type MultipleComponentsError struct {
	Category   services.Category
	Components []string
}

func (e *MultipleComponentsError) Error() string {
	return fmt.Sprintf("only one %s per project is supported (got %s)", e.Category, strings.Join(e.Components, ", "))
}

func (e *MultipleComponentsError) Unwrap() error {
	return ErrMultipleComponents
}

// MissingDependencyError means a service depends on one that was not selected.
type MissingDependencyError struct {
	Service    string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("service %s depends on %s, which is not selected", e.Service, e.Dependency)
}
