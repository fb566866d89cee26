package container

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContainerClosed is returned by operations on a container that has
// already been torn down with Cleanup. A closed container is terminal;
// build a fresh one with app.SetupDefaultContainer for reuse.
var ErrContainerClosed = errors.New("container: container is closed")

// UnknownServiceError is returned when a resolution names a service that
// was never registered.
type UnknownServiceError struct {
	Name string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("container: no service registered under %q", e.Name)
}

// DuplicateRegistrationError is returned by Register in strict mode when
// the name is already taken.
type DuplicateRegistrationError struct {
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("container: service %q is already registered", e.Name)
}

// RegistrationError is returned when a registration is malformed
// (empty name, nil factory).
type RegistrationError struct {
	Name   string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("container: cannot register %q: %s", e.Name, e.Reason)
}

// CircularDependencyError is returned when a resolution re-enters a name
// that is already being resolved. Path holds the full cycle, from the
// first occurrence of the repeated name back to itself.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("container: circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// ServiceConstructionError wraps a factory failure with the name of the
// service that could not be built.
type ServiceConstructionError struct {
	Name string
	Err  error
}

func (e *ServiceConstructionError) Error() string {
	return fmt.Sprintf("container: constructing service %q: %v", e.Name, e.Err)
}

func (e *ServiceConstructionError) Unwrap() error {
	return e.Err
}

// TypeMismatchError is returned by the generic Resolve helper when the
// resolved instance does not satisfy the requested type.
type TypeMismatchError struct {
	Name     string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("container: service %q resolved to %s, want %s", e.Name, e.Got, e.Expected)
}

// CleanupFailure records a single teardown error during Cleanup.
type CleanupFailure struct {
	Name string
	Err  error
}

// CleanupError aggregates every teardown failure from a Cleanup pass.
// Cleanup attempts all teardowns before reporting, so Failures may hold
// more than one entry.
type CleanupError struct {
	Failures []CleanupFailure
}

func (e *CleanupError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return fmt.Sprintf("container: cleanup failed for %d service(s): %s",
		len(e.Failures), strings.Join(parts, "; "))
}
