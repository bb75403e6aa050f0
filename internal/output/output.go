// Package output renders plans, tasks and critical path reports for the CLI.
package output

import (
	"github.com/abatilo/tempo/internal/deps"
	"github.com/abatilo/tempo/internal/task"
	"github.com/abatilo/tempo/internal/view"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatRows(rows []view.Row, critical map[int]bool) string
	FormatTask(t task.Task) string
	FormatCritical(r *deps.Result, tasks []task.Task) string
	FormatError(err error) string
	FormatMessage(msg string) string
}
