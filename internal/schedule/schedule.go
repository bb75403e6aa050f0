// Package schedule resolves every task's start date from its predecessors.
package schedule

import (
	"slices"
	"time"

	"github.com/abatilo/tempo/internal/dates"
	tempoerrors "github.com/abatilo/tempo/internal/errors"
	"github.com/abatilo/tempo/internal/hierarchy"
	"github.com/abatilo/tempo/internal/task"
)

type visitState int

const (
	unvisited visitState = iota
	inProgress
	resolved
)

// scheduler holds the working copy for one All call.
type scheduler struct {
	tasks []task.Task
	byID  map[int]int
	h     hierarchy.Hierarchy
	state map[int]visitState
	stack []int
}

// All returns a copy of tasks with every start resolved from its predecessors.
// The input slice is left untouched. Dangling predecessor ids are ignored and
// the task keeps its stored start. A predecessor cycle is reported as
// errors.CycleDetectedError.
//
// Running All on its own output returns identical starts.
func All(tasks []task.Task) ([]task.Task, error) {
	s := &scheduler{
		tasks: task.Clone(tasks),
		byID:  task.IndexByID(tasks),
		h:     hierarchy.Resolve(tasks),
		state: make(map[int]visitState, len(tasks)),
	}
	for i := range s.tasks {
		if err := s.resolve(i); err != nil {
			return nil, err
		}
	}
	return s.tasks, nil
}

func (s *scheduler) resolve(i int) error {
	id := s.tasks[i].ID
	switch s.state[id] {
	case resolved:
		return nil
	case inProgress:
		at := slices.Index(s.stack, id)
		cycle := append(slices.Clone(s.stack[at:]), id)
		return tempoerrors.CycleDetectedError{IDs: cycle}
	}

	s.state[id] = inProgress
	s.stack = append(s.stack, id)

	if err := s.place(i); err != nil {
		return err
	}

	s.stack = s.stack[:len(s.stack)-1]
	s.state[id] = resolved
	return nil
}

// place recomputes the start of task i. Multi-predecessor dependencies take
// precedence over the single predecessor edge.
func (s *scheduler) place(i int) error {
	t := s.tasks[i]

	if len(t.Dependencies) > 0 {
		var candidates []time.Time
		for _, dep := range t.Dependencies {
			j, ok := s.byID[dep.PredecessorID]
			if !ok {
				continue
			}
			pStart, pFinish, ok, err := s.interval(j)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			candidates = append(candidates, StartFor(dep.DepType, pStart, pFinish, t.Dur))
		}
		if len(candidates) == 0 {
			return nil
		}
		s.tasks[i].Start = combine(t.EffectiveLogic(), candidates)
		return nil
	}

	if t.PredecessorID == 0 {
		return nil
	}
	j, ok := s.byID[t.PredecessorID]
	if !ok {
		return nil
	}
	pStart, pFinish, ok, err := s.interval(j)
	if err != nil || !ok {
		return err
	}
	s.tasks[i].Start = StartFor(t.DepType, pStart, pFinish, t.Dur)
	return nil
}

// interval resolves predecessor j, and all of its descendants when it is a
// group, then returns its effective interval.
func (s *scheduler) interval(j int) (time.Time, time.Time, bool, error) {
	if err := s.resolve(j); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	for _, d := range s.h.Descendants[j] {
		if err := s.resolve(d); err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	}
	start, finish, ok := hierarchy.Interval(s.tasks, s.h, j)
	return start, finish, ok, nil
}

// StartFor applies the dependency rule for a predecessor interval
// [pStart, pFinish] to a task lasting dur calendar days.
func StartFor(dt task.DepType, pStart, pFinish time.Time, dur int) time.Time {
	switch task.NormalizeDepType(dt) {
	case task.StartToStart:
		return pStart
	case task.FinishToFinish:
		return dates.AddDays(pFinish, -dur)
	case task.StartToFinish:
		return dates.AddDays(pStart, -dur)
	default:
		return pFinish
	}
}

// combine picks the latest candidate for ALL and the earliest for ANY.
func combine(logic task.DepLogic, candidates []time.Time) time.Time {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if logic == task.LogicAny {
			if c.Before(best) {
				best = c
			}
		} else if c.After(best) {
			best = c
		}
	}
	return best
}
