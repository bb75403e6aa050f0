// Package hierarchy derives grouping from the positional sequence of indent
// levels and rolls descendant dates up into group summaries.
package hierarchy

import (
	"time"

	"github.com/abatilo/tempo/internal/dates"
	"github.com/abatilo/tempo/internal/task"
)

// Hierarchy is the grouping implied by a task slice. All keys are slice indices.
type Hierarchy struct {
	// Descendants holds every following index with a strictly greater indent,
	// up to the first row back at or above the group's level.
	Descendants map[int][]int
	// Groups is the set of indices with at least one descendant.
	Groups map[int]bool
	// DirectChildCount counts only descendants exactly one level deeper.
	DirectChildCount map[int]int
}

// IsGroup reports whether index i has descendants.
func (h Hierarchy) IsGroup(i int) bool {
	return h.Groups[i]
}

// Resolve scans forward from every index while the indent stays deeper.
// Reordering tasks changes the result even when no indent changes.
func Resolve(tasks []task.Task) Hierarchy {
	h := Hierarchy{
		Descendants:      make(map[int][]int),
		Groups:           make(map[int]bool),
		DirectChildCount: make(map[int]int),
	}

	for i := range tasks {
		level := tasks[i].Indent
		for j := i + 1; j < len(tasks) && tasks[j].Indent > level; j++ {
			h.Descendants[i] = append(h.Descendants[i], j)
			if tasks[j].Indent == level+1 {
				h.DirectChildCount[i]++
			}
		}
		if len(h.Descendants[i]) > 0 {
			h.Groups[i] = true
		}
	}
	return h
}

// Summary is the rolled-up interval of a group.
type Summary struct {
	Start  time.Time
	Finish time.Time
	Dur    int
}

// Summarize computes a Summary for every group that has at least one dated
// descendant. Groups without one are absent from the map.
func Summarize(tasks []task.Task) map[int]Summary {
	return SummarizeWith(tasks, Resolve(tasks))
}

// SummarizeWith is Summarize for a caller that already resolved the hierarchy.
func SummarizeWith(tasks []task.Task, h Hierarchy) map[int]Summary {
	out := make(map[int]Summary)
	// Descending order so nested groups are done before their ancestors read them.
	for i := len(tasks) - 1; i >= 0; i-- {
		if !h.Groups[i] {
			continue
		}
		if s, ok := summarizeGroup(tasks, h, i, out); ok {
			out[i] = s
		}
	}
	return out
}

// SummaryOf computes the summary of the single group at index i.
func SummaryOf(tasks []task.Task, h Hierarchy, i int) (Summary, bool) {
	if !h.Groups[i] {
		return Summary{}, false
	}
	done := make(map[int]Summary)
	desc := h.Descendants[i]
	for k := len(desc) - 1; k >= 0; k-- {
		j := desc[k]
		if !h.Groups[j] {
			continue
		}
		if s, ok := summarizeGroup(tasks, h, j, done); ok {
			done[j] = s
		}
	}
	return summarizeGroup(tasks, h, i, done)
}

func summarizeGroup(tasks []task.Task, h Hierarchy, i int, done map[int]Summary) (Summary, bool) {
	var start, finish time.Time
	found := false
	for _, j := range h.Descendants[i] {
		s, f, ok := effectiveInterval(tasks, j, done)
		if !ok {
			continue
		}
		if !found || s.Before(start) {
			start = s
		}
		if !found || f.After(finish) {
			finish = f
		}
		found = true
	}
	if !found {
		return Summary{}, false
	}
	return Summary{Start: start, Finish: finish, Dur: dates.DaysBetween(start, finish)}, true
}

// effectiveInterval is a computed summary when one exists, else the literal
// start and start+dur. Undated rows report false.
func effectiveInterval(tasks []task.Task, j int, done map[int]Summary) (time.Time, time.Time, bool) {
	if s, ok := done[j]; ok {
		return s.Start, s.Finish, true
	}
	t := tasks[j]
	if t.Start.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return t.Start, dates.Finish(t.Start, t.Dur), true
}

// Interval returns the interval index i contributes to dependency math:
// its group summary when it has one, otherwise its own start and finish.
func Interval(tasks []task.Task, h Hierarchy, i int) (time.Time, time.Time, bool) {
	if s, ok := SummaryOf(tasks, h, i); ok {
		return s.Start, s.Finish, true
	}
	return effectiveInterval(tasks, i, nil)
}
