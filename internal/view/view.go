// Package view projects a plan into the rows a Gantt or grid renderer draws.
package view

import (
	"github.com/abatilo/tempo/internal/hierarchy"
	"github.com/abatilo/tempo/internal/task"
)

// Row is a visible task. Start and Dur carry the group rollup when the row is
// a group with a summary. OriginalIndex routes edits back into the plan slice.
type Row struct {
	task.Task
	IsGroup       bool
	Collapsed     bool
	OriginalIndex int
}

// VisibleIndices returns the indices not hidden by a collapsed ancestor, in
// plan order. collapsed is keyed by task id. Collapsing a group hides every
// descendant, not only its direct children.
func VisibleIndices(tasks []task.Task, collapsed map[int]bool) []int {
	return visibleWith(tasks, hierarchy.Resolve(tasks), collapsed)
}

func visibleWith(tasks []task.Task, h hierarchy.Hierarchy, collapsed map[int]bool) []int {
	hidden := make(map[int]bool)
	for i, t := range tasks {
		if !collapsed[t.ID] || hidden[i] {
			continue
		}
		for _, j := range h.Descendants[i] {
			hidden[j] = true
		}
	}

	visible := make([]int, 0, len(tasks))
	for i := range tasks {
		if !hidden[i] {
			visible = append(visible, i)
		}
	}
	return visible
}

// BuildVisible maps each visible index to a Row, substituting group summaries.
func BuildVisible(tasks []task.Task, collapsed map[int]bool) []Row {
	h := hierarchy.Resolve(tasks)
	sums := hierarchy.SummarizeWith(tasks, h)

	indices := visibleWith(tasks, h, collapsed)
	rows := make([]Row, 0, len(indices))
	for _, i := range indices {
		row := Row{Task: tasks[i], IsGroup: h.IsGroup(i), OriginalIndex: i}
		row.Collapsed = row.IsGroup && collapsed[row.ID]
		if s, ok := sums[i]; ok {
			row.Start = s.Start
			row.Dur = s.Dur
		}
		rows = append(rows, row)
	}
	return rows
}
