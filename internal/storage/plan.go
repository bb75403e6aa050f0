package storage

import (
	"slices"

	"github.com/abatilo/tempo/internal/dates"
	"github.com/abatilo/tempo/internal/deps"
	tempoerrors "github.com/abatilo/tempo/internal/errors"
	"github.com/abatilo/tempo/internal/hierarchy"
	"github.com/abatilo/tempo/internal/task"
)

// Plan is the ordered task list of a project plus free-form notes.
// Order is significant: it defines grouping and must survive every round trip.
type Plan struct {
	Name  string
	Tasks []task.Task
	Notes string
}

// Find returns the position of the task with the given id.
func (p *Plan) Find(id int) (int, error) {
	for i, t := range p.Tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, tempoerrors.TaskNotFoundError{ID: id}
}

// Insert places t at position at, clamped to the plan bounds, assigning the
// next free id when t.ID is zero. It returns the stored task.
func (p *Plan) Insert(t task.Task, at int) task.Task {
	if t.ID == 0 {
		t.ID = task.NextID(p.Tasks)
	}
	at = max(0, min(at, len(p.Tasks)))
	p.Tasks = slices.Insert(p.Tasks, at, t)
	return t
}

// Remove deletes a task and strips its id from every predecessor reference.
// Its descendants move up one level so they stay inside the enclosing group.
func (p *Plan) Remove(id int) error {
	i, err := p.Find(id)
	if err != nil {
		return err
	}
	h := hierarchy.Resolve(p.Tasks)
	for _, j := range h.Descendants[i] {
		p.Tasks[j].Indent--
	}
	p.Tasks = slices.Delete(p.Tasks, i, i+1)

	for k := range p.Tasks {
		t := &p.Tasks[k]
		if t.PredecessorID == id {
			t.PredecessorID = 0
			t.DepType = ""
		}
		t.Dependencies = slices.DeleteFunc(t.Dependencies, func(d task.Dependency) bool {
			return d.PredecessorID == id
		})
		if len(t.Dependencies) == 0 {
			t.Dependencies = nil
			t.DepLogic = ""
		}
	}
	return nil
}

// Indent moves a task, with its subtree, one level deeper. A row may sit at
// most one level below the row above it.
func (p *Plan) Indent(id int) error {
	i, err := p.Find(id)
	if err != nil {
		return err
	}
	if i == 0 {
		return tempoerrors.InvalidIndentError{ID: id, Reason: "first row cannot be indented"}
	}
	if p.Tasks[i].Indent > p.Tasks[i-1].Indent {
		return tempoerrors.InvalidIndentError{ID: id, Reason: "already one level below the row above"}
	}
	p.shiftSubtree(i, 1)
	return nil
}

// Outdent moves a task, with its subtree, one level up.
func (p *Plan) Outdent(id int) error {
	i, err := p.Find(id)
	if err != nil {
		return err
	}
	if p.Tasks[i].Indent == 0 {
		return tempoerrors.InvalidIndentError{ID: id, Reason: "already at top level"}
	}
	p.shiftSubtree(i, -1)
	return nil
}

func (p *Plan) shiftSubtree(i, delta int) {
	h := hierarchy.Resolve(p.Tasks)
	p.Tasks[i].Indent += delta
	for _, j := range h.Descendants[i] {
		p.Tasks[j].Indent += delta
	}
}

// Link makes predID a predecessor of id. With multi the edge is appended to
// Dependencies, otherwise it replaces the single PredecessorID edge. It
// reports false when the same edge already exists.
func (p *Plan) Link(id, predID int, dt task.DepType, multi bool) (bool, error) {
	if err := deps.NewGraph(p.Tasks).ValidateAddDep(id, predID); err != nil {
		return false, err
	}
	i, err := p.Find(id)
	if err != nil {
		return false, err
	}
	t := &p.Tasks[i]
	dt = task.NormalizeDepType(dt)

	if !multi {
		if t.PredecessorID == predID && t.EffectiveDepType() == dt {
			return false, nil
		}
		t.PredecessorID = predID
		t.DepType = dt
		return true, nil
	}

	for k, d := range t.Dependencies {
		if d.PredecessorID != predID {
			continue
		}
		if task.NormalizeDepType(d.DepType) == dt {
			return false, nil
		}
		t.Dependencies[k].DepType = dt
		return true, nil
	}
	t.Dependencies = append(t.Dependencies, task.Dependency{PredecessorID: predID, DepType: dt})
	return true, nil
}

// Unlink removes predID from both edge kinds of id. It reports whether an
// edge was removed.
func (p *Plan) Unlink(id, predID int) (bool, error) {
	i, err := p.Find(id)
	if err != nil {
		return false, err
	}
	t := &p.Tasks[i]
	removed := false

	if t.PredecessorID == predID {
		t.PredecessorID = 0
		t.DepType = ""
		removed = true
	}
	n := len(t.Dependencies)
	t.Dependencies = slices.DeleteFunc(t.Dependencies, func(d task.Dependency) bool {
		return d.PredecessorID == predID
	})
	if len(t.Dependencies) != n {
		removed = true
	}
	if len(t.Dependencies) == 0 {
		t.Dependencies = nil
		t.DepLogic = ""
	}
	return removed, nil
}

// Shift moves the start of id by n business days. Scheduling afterwards
// overrides the result for tasks with a resolvable predecessor.
func (p *Plan) Shift(id, n int) error {
	i, err := p.Find(id)
	if err != nil {
		return err
	}
	p.Tasks[i].Start = dates.AddBusinessDays(p.Tasks[i].Start, n)
	return nil
}

// IDs returns the set of task ids in the plan.
func (p *Plan) IDs() map[int]bool {
	ids := make(map[int]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		ids[t.ID] = true
	}
	return ids
}
