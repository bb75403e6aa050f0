//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// NotInitializedError indicates the plan directory doesn't exist.
type NotInitializedError struct{}

func (e NotInitializedError) Error() string {
	return "tempo not initialized: run 'tempo init' first"
}

// AlreadyInitializedError indicates a plan already exists.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "tempo already initialized"
}

// NotInRepoError indicates the command was run outside a git repository.
type NotInRepoError struct{}

func (e NotInRepoError) Error() string {
	return "not in a git repository (tempo requires a project root)"
}

// TaskNotFoundError indicates no task carries the given id.
type TaskNotFoundError struct {
	ID int
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %d", e.ID)
}

// DuplicateIDError indicates two rows share an id.
type DuplicateIDError struct {
	ID int
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate task id: %d", e.ID)
}

// CycleError indicates adding a dependency would create a cycle.
type CycleError struct {
	From int
	To   int
}

func (e CycleError) Error() string {
	return fmt.Sprintf("adding dependency %d -> %d would create a cycle", e.From, e.To)
}

// CycleDetectedError indicates the predecessor graph of a plan contains a cycle.
// IDs lists the tasks involved, in discovery order.
type CycleDetectedError struct {
	IDs []int
}

func (e CycleDetectedError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(parts, " -> "))
}

// InvalidDepTypeError indicates an unknown dependency type.
type InvalidDepTypeError struct {
	Value string
}

func (e InvalidDepTypeError) Error() string {
	return fmt.Sprintf("invalid dependency type: %s (valid: FS, SS, FF, SF)", e.Value)
}

// InvalidDepLogicError indicates an unknown combinator.
type InvalidDepLogicError struct {
	Value string
}

func (e InvalidDepLogicError) Error() string {
	return fmt.Sprintf("invalid dependency logic: %s (valid: ALL, ANY)", e.Value)
}

// InvalidDateError indicates a date string that none of the accepted formats match.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q (use YYYY-MM-DD, DD-MMM-YY or DD-MMM-YYYY)", e.Value)
}

// InvalidIndentError indicates an indent change the outline cannot represent.
type InvalidIndentError struct {
	ID     int
	Reason string
}

func (e InvalidIndentError) Error() string {
	return fmt.Sprintf("cannot change indent of task %d: %s", e.ID, e.Reason)
}

// NotAGroupError indicates a collapse or expand on a row without descendants.
type NotAGroupError struct {
	ID int
}

func (e NotAGroupError) Error() string {
	return fmt.Sprintf("task %d has no subtasks to collapse or expand", e.ID)
}

// SelfDependencyError indicates a task listed as its own predecessor.
type SelfDependencyError struct {
	ID int
}

func (e SelfDependencyError) Error() string {
	return fmt.Sprintf("task %d cannot depend on itself", e.ID)
}
