//nolint:testpackage // Tests require internal access for thorough testing
package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/abatilo/tempo/internal/dates"
	tempoerrors "github.com/abatilo/tempo/internal/errors"
	"github.com/abatilo/tempo/internal/task"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeTask(id, indent int, start time.Time, dur int) task.Task {
	return task.Task{ID: id, Name: "Task", Type: task.TypeTask, Indent: indent, Start: start, Dur: dur}
}

func after(t task.Task, pred int, dt task.DepType) task.Task {
	t.PredecessorID = pred
	t.DepType = dt
	return t
}

func mustSchedule(t *testing.T, tasks []task.Task) []task.Task {
	t.Helper()
	out, err := All(tasks)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	return out
}

func assertStart(t *testing.T, tk task.Task, want time.Time) {
	t.Helper()
	if !tk.Start.Equal(want) {
		t.Errorf("task %d start = %s, want %s", tk.ID, dates.ISO(tk.Start), dates.ISO(want))
	}
}

func TestDepTypeRules(t *testing.T) {
	// Predecessor runs 2026-01-05 .. 2026-01-10; dependent lasts 2 days
	jan1 := day(2026, time.January, 1)
	pred := makeTask(1, 0, day(2026, time.January, 5), 5)

	tests := []struct {
		dep  task.DepType
		want time.Time
	}{
		{task.FinishToStart, day(2026, time.January, 10)},
		{"", day(2026, time.January, 10)},
		{task.StartToStart, day(2026, time.January, 5)},
		{task.FinishToFinish, day(2026, time.January, 8)},
		{task.StartToFinish, day(2026, time.January, 3)},
	}

	for _, tt := range tests {
		t.Run(string(tt.dep), func(t *testing.T) {
			out := mustSchedule(t, []task.Task{pred, after(makeTask(2, 0, jan1, 2), 1, tt.dep)})
			assertStart(t, out[1], tt.want)
		})
	}
}

func TestLinearChain(t *testing.T) {
	jan1 := day(2026, time.January, 1)
	tasks := []task.Task{
		makeTask(1, 0, day(2026, time.January, 5), 3),
		after(makeTask(2, 0, jan1, 2), 1, task.FinishToStart),
		after(makeTask(3, 0, jan1, 4), 2, task.FinishToStart),
	}

	out := mustSchedule(t, tasks)

	assertStart(t, out[0], day(2026, time.January, 5))
	assertStart(t, out[1], day(2026, time.January, 8))
	assertStart(t, out[2], day(2026, time.January, 10))
}

func TestForwardReference(t *testing.T) {
	// Row order does not have to follow dependency order
	jan1 := day(2026, time.January, 1)
	tasks := []task.Task{
		after(makeTask(3, 0, jan1, 1), 2, task.FinishToStart),
		after(makeTask(2, 0, jan1, 2), 1, task.FinishToStart),
		makeTask(1, 0, day(2026, time.January, 5), 3),
	}

	out := mustSchedule(t, tasks)

	assertStart(t, out[1], day(2026, time.January, 8))
	assertStart(t, out[0], day(2026, time.January, 10))
}

func TestDoesNotMutateInput(t *testing.T) {
	original := day(2026, time.January, 1)
	tasks := []task.Task{
		makeTask(1, 0, day(2026, time.January, 5), 3),
		after(makeTask(2, 0, original, 2), 1, task.FinishToStart),
	}

	out := mustSchedule(t, tasks)

	assertStart(t, tasks[1], original)
	assertStart(t, out[1], day(2026, time.January, 8))
}

func TestIdempotent(t *testing.T) {
	jan1 := day(2026, time.January, 1)
	tasks := []task.Task{
		makeTask(1, 0, jan1, 0),
		makeTask(2, 1, day(2026, time.January, 5), 2),
		after(makeTask(3, 1, jan1, 3), 2, task.StartToStart),
		after(makeTask(4, 0, jan1, 1), 1, task.FinishToStart),
		after(makeTask(5, 0, jan1, 2), 4, task.FinishToFinish),
		{
			ID: 6, Type: task.TypeMilestone, Start: jan1,
			Dependencies: []task.Dependency{{PredecessorID: 4}, {PredecessorID: 5, DepType: task.StartToStart}},
			DepLogic:     task.LogicAny,
		},
	}

	once := mustSchedule(t, tasks)
	twice := mustSchedule(t, once)

	for i := range once {
		if !once[i].Start.Equal(twice[i].Start) {
			t.Errorf("task %d drifted: %s then %s", once[i].ID, dates.ISO(once[i].Start), dates.ISO(twice[i].Start))
		}
	}
}

func TestGroupAsPredecessor(t *testing.T) {
	jan1 := day(2026, time.January, 1)
	tasks := []task.Task{
		makeTask(1, 0, jan1, 0),                       // Group
		makeTask(2, 1, day(2026, time.January, 5), 2), // C1
		makeTask(3, 1, day(2026, time.January, 8), 1), // C2
		after(makeTask(4, 0, jan1, 0), 1, task.FinishToStart),
	}

	out := mustSchedule(t, tasks)

	// The group's rollup finish, not its literal start + dur
	assertStart(t, out[3], day(2026, time.January, 9))
}

func TestGroupPredecessorSeesRescheduledChildren(t *testing.T) {
	jan1 := day(2026, time.January, 1)
	tasks := []task.Task{
		after(makeTask(10, 0, jan1, 0), 1, task.FinishToStart), // Gate on the group, listed first
		makeTask(1, 0, jan1, 0),                                // Group
		makeTask(2, 1, day(2026, time.January, 5), 2),
		after(makeTask(3, 1, jan1, 4), 2, task.FinishToStart), // runs 01-07 .. 01-11
	}

	out := mustSchedule(t, tasks)

	assertStart(t, out[3], day(2026, time.January, 7))
	assertStart(t, out[0], day(2026, time.January, 11))
}

// The reference scenario has p2 finishing on Saturday 2026-01-10 and ALL
// landing on Monday 2026-01-12, as if a start falling on a weekend rolled
// forward to the next weekday. Dependent starts are plain calendar days with
// no weekend adjustment, so p2 here finishes on the 12th. Revisit if weekend
// roll-forward is ever added.
func TestAllVersusAny(t *testing.T) {
	jan1 := day(2026, time.January, 1)
	p1 := makeTask(1, 0, day(2026, time.January, 5), 2)  // finishes 2026-01-07
	p2 := makeTask(2, 0, day(2026, time.January, 10), 2) // finishes 2026-01-12
	deps := []task.Dependency{
		{PredecessorID: 1, DepType: task.FinishToStart},
		{PredecessorID: 2, DepType: task.FinishToStart},
	}

	tests := []struct {
		logic task.DepLogic
		want  time.Time
	}{
		{task.LogicAll, day(2026, time.January, 12)},
		{"", day(2026, time.January, 12)},
		{task.LogicAny, day(2026, time.January, 7)},
	}

	for _, tt := range tests {
		t.Run(string(tt.logic), func(t *testing.T) {
			dependent := task.Task{ID: 3, Type: task.TypeTask, Start: jan1, Dur: 1, Dependencies: deps, DepLogic: tt.logic}
			out := mustSchedule(t, []task.Task{p1, p2, dependent})
			assertStart(t, out[2], tt.want)
		})
	}
}

func TestDependenciesOverridePredecessorID(t *testing.T) {
	jan1 := day(2026, time.January, 1)
	tasks := []task.Task{
		makeTask(1, 0, day(2026, time.January, 5), 2),
		makeTask(2, 0, day(2026, time.February, 1), 2),
		{
			ID: 3, Type: task.TypeTask, Start: jan1, Dur: 1,
			PredecessorID: 2,
			Dependencies:  []task.Dependency{{PredecessorID: 1}},
		},
	}

	out := mustSchedule(t, tasks)

	assertStart(t, out[2], day(2026, time.January, 7))
}

func TestDanglingPredecessorIsNoop(t *testing.T) {
	stored := day(2026, time.March, 3)
	tasks := []task.Task{
		after(makeTask(1, 0, stored, 2), 99, task.FinishToStart),
		{ID: 2, Type: task.TypeTask, Start: stored, Dependencies: []task.Dependency{{PredecessorID: 98}}},
	}

	out := mustSchedule(t, tasks)

	assertStart(t, out[0], stored)
	assertStart(t, out[1], stored)
}

func TestCycleDetected(t *testing.T) {
	jan1 := day(2026, time.January, 1)
	tests := []struct {
		name  string
		tasks []task.Task
	}{
		{
			name: "two task loop",
			tasks: []task.Task{
				after(makeTask(1, 0, jan1, 1), 2, task.FinishToStart),
				after(makeTask(2, 0, jan1, 1), 1, task.FinishToStart),
			},
		},
		{
			name: "self loop",
			tasks: []task.Task{
				after(makeTask(1, 0, jan1, 1), 1, task.FinishToStart),
			},
		},
		{
			name: "loop through dependencies list",
			tasks: []task.Task{
				makeTask(1, 0, jan1, 1),
				{ID: 2, Start: jan1, Dependencies: []task.Dependency{{PredecessorID: 1}, {PredecessorID: 3}}},
				after(makeTask(3, 0, jan1, 1), 2, task.StartToStart),
			},
		},
		{
			name: "child depends on its own group",
			tasks: []task.Task{
				makeTask(1, 0, jan1, 1),
				after(makeTask(2, 1, jan1, 1), 1, task.StartToStart),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := All(tt.tasks)
			var cycle tempoerrors.CycleDetectedError
			if !errors.As(err, &cycle) {
				t.Fatalf("All error = %v, want CycleDetectedError", err)
			}
			if len(cycle.IDs) == 0 {
				t.Error("cycle should name the tasks involved")
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	out, err := All(nil)
	if err != nil {
		t.Fatalf("All(nil) error = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("All(nil) length = %d, want 0", len(out))
	}
}
