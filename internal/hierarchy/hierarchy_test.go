//nolint:testpackage // Tests require internal access for thorough testing
package hierarchy

import (
	"slices"
	"testing"
	"time"

	"github.com/abatilo/tempo/internal/task"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeTask(id, indent int, start time.Time, dur int) task.Task {
	return task.Task{ID: id, Name: "Task", Type: task.TypeTask, Indent: indent, Start: start, Dur: dur}
}

func TestResolve(t *testing.T) {
	jan5 := day(2026, time.January, 5)
	tasks := []task.Task{
		makeTask(1, 0, jan5, 1), // 0 group
		makeTask(2, 1, jan5, 1), // 1 group
		makeTask(3, 2, jan5, 1), // 2
		makeTask(4, 1, jan5, 1), // 3
		makeTask(5, 0, jan5, 1), // 4
	}

	h := Resolve(tasks)

	if got := h.Descendants[0]; !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Descendants[0] = %v, want [1 2 3]", got)
	}
	if got := h.Descendants[1]; !slices.Equal(got, []int{2}) {
		t.Errorf("Descendants[1] = %v, want [2]", got)
	}
	if len(h.Descendants[4]) != 0 {
		t.Errorf("Descendants[4] = %v, want none", h.Descendants[4])
	}

	for i, want := range []bool{true, true, false, false, false} {
		if h.IsGroup(i) != want {
			t.Errorf("IsGroup(%d) = %v, want %v", i, h.IsGroup(i), want)
		}
	}

	if h.DirectChildCount[0] != 2 {
		t.Errorf("DirectChildCount[0] = %d, want 2", h.DirectChildCount[0])
	}
	if h.DirectChildCount[1] != 1 {
		t.Errorf("DirectChildCount[1] = %d, want 1", h.DirectChildCount[1])
	}
}

func TestResolveIndentJump(t *testing.T) {
	jan5 := day(2026, time.January, 5)
	// Row 2 jumps two levels below row 0
	tasks := []task.Task{
		makeTask(1, 0, jan5, 1),
		makeTask(2, 1, jan5, 1),
		makeTask(3, 3, jan5, 1),
	}

	h := Resolve(tasks)

	if !slices.Contains(h.Descendants[0], 2) {
		t.Errorf("Descendants[0] = %v, should include the deep row", h.Descendants[0])
	}
	if h.DirectChildCount[0] != 1 {
		t.Errorf("DirectChildCount[0] = %d, want 1 (deep row excluded)", h.DirectChildCount[0])
	}
	if h.DirectChildCount[1] != 0 {
		t.Errorf("DirectChildCount[1] = %d, want 0 (indent 3 is not 1+1)", h.DirectChildCount[1])
	}
	if !h.IsGroup(1) {
		t.Error("row 1 has a deeper follower and should be a group")
	}
}

func TestResolveOrderIsHierarchy(t *testing.T) {
	jan5 := day(2026, time.January, 5)
	a := makeTask(1, 0, jan5, 1)
	b := makeTask(2, 1, jan5, 1)

	if !Resolve([]task.Task{a, b}).IsGroup(0) {
		t.Error("a followed by deeper b should be a group")
	}
	if Resolve([]task.Task{b, a}).IsGroup(0) {
		t.Error("after reordering, b is followed by a shallower row and is not a group")
	}
}

func TestSummarize(t *testing.T) {
	tasks := []task.Task{
		makeTask(1, 0, day(2026, time.January, 1), 0),
		makeTask(2, 1, day(2026, time.January, 5), 2),
		makeTask(3, 1, day(2026, time.January, 8), 1),
	}

	sums := Summarize(tasks)

	s, ok := sums[0]
	if !ok {
		t.Fatal("expected summary for group 0")
	}
	if !s.Start.Equal(day(2026, time.January, 5)) {
		t.Errorf("Start = %v, want 2026-01-05", s.Start)
	}
	if !s.Finish.Equal(day(2026, time.January, 9)) {
		t.Errorf("Finish = %v, want 2026-01-09", s.Finish)
	}
	if s.Dur != 4 {
		t.Errorf("Dur = %d, want 4", s.Dur)
	}
	if len(sums) != 1 {
		t.Errorf("len(summaries) = %d, want 1", len(sums))
	}
}

func TestSummarizeNested(t *testing.T) {
	// The inner group's literal dates are ignored in favour of its rollup
	tasks := []task.Task{
		makeTask(1, 0, day(2025, time.December, 1), 1),
		makeTask(2, 1, day(2025, time.December, 1), 100),
		makeTask(3, 2, day(2026, time.February, 2), 3),
		makeTask(4, 1, day(2026, time.January, 20), 2),
	}

	sums := Summarize(tasks)

	inner := sums[1]
	if !inner.Start.Equal(day(2026, time.February, 2)) || !inner.Finish.Equal(day(2026, time.February, 5)) {
		t.Errorf("inner summary = %+v", inner)
	}

	outer := sums[0]
	if !outer.Start.Equal(day(2026, time.January, 20)) {
		t.Errorf("outer Start = %v, want 2026-01-20", outer.Start)
	}
	if !outer.Finish.Equal(day(2026, time.February, 5)) {
		t.Errorf("outer Finish = %v, want 2026-02-05", outer.Finish)
	}
	if outer.Dur != 16 {
		t.Errorf("outer Dur = %d, want 16", outer.Dur)
	}
}

func TestSummarizeAbsentWithoutDates(t *testing.T) {
	tasks := []task.Task{
		makeTask(1, 0, day(2026, time.January, 5), 1),
		makeTask(2, 1, time.Time{}, 3),
	}

	if _, ok := Summarize(tasks)[0]; ok {
		t.Error("group with only undated descendants should have no summary")
	}

	start, finish, ok := Interval(tasks, Resolve(tasks), 0)
	if !ok {
		t.Fatal("Interval should fall back to the literal dates")
	}
	if !start.Equal(day(2026, time.January, 5)) || !finish.Equal(day(2026, time.January, 6)) {
		t.Errorf("Interval = %v..%v, want literal 2026-01-05..2026-01-06", start, finish)
	}
}

func TestSummaryOfMatchesSummarize(t *testing.T) {
	tasks := []task.Task{
		makeTask(1, 0, day(2026, time.January, 1), 1),
		makeTask(2, 1, day(2026, time.January, 3), 1),
		makeTask(3, 2, day(2026, time.January, 4), 6),
		makeTask(4, 2, day(2026, time.January, 2), 1),
		makeTask(5, 0, day(2026, time.March, 1), 1),
		makeTask(6, 1, day(2026, time.March, 2), 2),
	}

	h := Resolve(tasks)
	all := SummarizeWith(tasks, h)

	for i := range tasks {
		got, ok := SummaryOf(tasks, h, i)
		want, wantOK := all[i]
		if ok != wantOK || got != want {
			t.Errorf("SummaryOf(%d) = %+v, %v; want %+v, %v", i, got, ok, want, wantOK)
		}
	}
}
