package deps

import (
	"slices"

	tempoerrors "github.com/abatilo/tempo/internal/errors"
	"github.com/abatilo/tempo/internal/task"
)

// Graph represents the dependency relationships between tasks.
// Critical-path analysis walks only the single PredecessorID edges; edit
// validation also follows multi-predecessor Dependencies.
type Graph struct {
	tasks map[int]task.Task
	ids   []int         // plan order
	succs map[int][]int // PredecessorID edges, successors in plan order
}

// NewGraph creates a Graph from a plan. Edges to unknown ids are dropped.
func NewGraph(tasks []task.Task) *Graph {
	g := &Graph{
		tasks: make(map[int]task.Task, len(tasks)),
		succs: make(map[int][]int),
	}
	for _, t := range tasks {
		if _, dup := g.tasks[t.ID]; dup {
			continue
		}
		g.tasks[t.ID] = t
		g.ids = append(g.ids, t.ID)
	}
	for _, id := range g.ids {
		if pred, ok := g.predecessor(id); ok {
			g.succs[pred] = append(g.succs[pred], id)
		}
	}
	return g
}

// predecessor returns the PredecessorID of id when it names a known task.
func (g *Graph) predecessor(id int) (int, bool) {
	pred := g.tasks[id].PredecessorID
	if pred == 0 {
		return 0, false
	}
	if _, ok := g.tasks[pred]; !ok {
		return 0, false
	}
	return pred, true
}

// Successors returns IDs of tasks whose PredecessorID is the given task.
func (g *Graph) Successors(id int) []int {
	return slices.Clone(g.succs[id])
}

// predecessorsOf returns every predecessor id of a task across both edge kinds.
func (g *Graph) predecessorsOf(id int) []int {
	t, ok := g.tasks[id]
	if !ok {
		return nil
	}
	var preds []int
	if t.PredecessorID != 0 {
		preds = append(preds, t.PredecessorID)
	}
	for _, d := range t.Dependencies {
		preds = append(preds, d.PredecessorID)
	}
	return preds
}

// WouldCreateCycle checks if making `to` a predecessor of `from` would create a cycle.
// Uses BFS from 'to' through existing predecessor edges to see if we can reach 'from'.
func (g *Graph) WouldCreateCycle(from, to int) bool {
	visited := make(map[int]bool)
	queue := []int{to}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == from {
			return true
		}

		if visited[current] {
			continue
		}
		visited[current] = true

		queue = append(queue, g.predecessorsOf(current)...)
	}
	return false
}

// ValidateAddDep validates making `to` a predecessor of `from`.
func (g *Graph) ValidateAddDep(from, to int) error {
	if _, ok := g.tasks[from]; !ok {
		return tempoerrors.TaskNotFoundError{ID: from}
	}
	if _, ok := g.tasks[to]; !ok {
		return tempoerrors.TaskNotFoundError{ID: to}
	}
	if from == to {
		return tempoerrors.SelfDependencyError{ID: from}
	}
	if g.WouldCreateCycle(from, to) {
		return tempoerrors.CycleError{From: from, To: to}
	}
	return nil
}

// TopoOrder sorts the PredecessorID graph with Kahn's algorithm. Ties keep
// plan order. A cycle is returned as CycleDetectedError naming the unsorted tasks.
func (g *Graph) TopoOrder() ([]int, error) {
	return g.topoOrder(nil)
}

// topoOrder is TopoOrder with an extra edge from each task to every group in
// enclosing[task], so a group sorts after everything it contains.
func (g *Graph) topoOrder(enclosing map[int][]int) ([]int, error) {
	inDegree := make(map[int]int, len(g.ids))
	for _, id := range g.ids {
		if _, ok := g.predecessor(id); ok {
			inDegree[id] = 1
		}
		for _, group := range enclosing[id] {
			inDegree[group]++
		}
	}

	var queue []int
	for _, id := range g.ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]int, 0, len(g.ids))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, next := range slices.Concat(g.succs[node], enclosing[node]) {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(g.ids) {
		var stuck []int
		for _, id := range g.ids {
			if inDegree[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		return nil, tempoerrors.CycleDetectedError{IDs: stuck}
	}
	return order, nil
}
