package deps

import (
	"math"
	"time"

	"github.com/abatilo/tempo/internal/hierarchy"
	"github.com/abatilo/tempo/internal/task"
)

// criticalTolerance absorbs rounding in day offsets.
const criticalTolerance = 0.5

const hoursPerDay = 24

// Node is the CPM schedule of one task, in days from the project start.
type Node struct {
	ID    int     `json:"id"`
	Dur   int     `json:"dur"`
	ES    float64 `json:"es"`
	EF    float64 `json:"ef"`
	LS    float64 `json:"ls"`
	LF    float64 `json:"lf"`
	Float float64 `json:"float"`
}

// IsCritical reports whether the node has no slack.
func (n Node) IsCritical() bool {
	return math.Abs(n.Float) < criticalTolerance
}

// Result is the outcome of Analyze.
type Result struct {
	Nodes        map[int]*Node
	Order        []int // topological order, dated tasks only
	ProjectStart time.Time
	ProjectEnd   float64
	Critical     map[int]bool
	CriticalPath []int // critical ids in topological order
}

// Analyze runs the critical path method over an already scheduled plan.
//
// Earliest times come from each task's stored start rather than being
// recomputed; a group uses its rolled-up interval instead of its own fields.
// Latest times come from one backward pass in reverse topological order over
// the single PredecessorID edges, and a task inside a group may not finish
// after the group's latest finish. Multi-predecessor Dependencies are not
// considered. Tasks without a start are skipped.
func Analyze(tasks []task.Task) (*Result, error) {
	g := NewGraph(tasks)
	h := hierarchy.Resolve(tasks)
	enclosing := enclosingGroups(tasks, h)
	order, err := g.topoOrder(enclosing)
	if err != nil {
		return nil, err
	}
	spans := spansOf(tasks, h)

	result := &Result{
		Nodes:    make(map[int]*Node),
		Critical: make(map[int]bool),
	}

	for _, id := range order {
		sp, ok := spans[id]
		if !ok {
			continue
		}
		if result.ProjectStart.IsZero() || sp.start.Before(result.ProjectStart) {
			result.ProjectStart = sp.start
		}
		result.Order = append(result.Order, id)
	}
	if len(result.Order) == 0 {
		return result, nil
	}

	// Forward pass
	for i, id := range result.Order {
		sp := spans[id]
		es := sp.start.Sub(result.ProjectStart).Hours() / hoursPerDay
		n := &Node{ID: id, Dur: sp.dur, ES: es, EF: es + float64(sp.dur)}
		result.Nodes[id] = n
		if i == 0 || n.EF > result.ProjectEnd {
			result.ProjectEnd = n.EF
		}
	}

	// Backward pass; enclosing groups sort after their members so their
	// latest finish is already known here.
	for i := len(result.Order) - 1; i >= 0; i-- {
		n := result.Nodes[result.Order[i]]
		n.LF = result.ProjectEnd
		for _, succID := range g.Successors(n.ID) {
			succ, ok := result.Nodes[succID]
			if !ok {
				continue
			}
			n.LF = math.Min(n.LF, latestFinishBound(g.tasks[succID].DepType, succ, n.Dur))
		}
		for _, groupID := range enclosing[n.ID] {
			if group, ok := result.Nodes[groupID]; ok {
				n.LF = math.Min(n.LF, group.LF)
			}
		}
		n.LS = n.LF - float64(n.Dur)
		n.Float = n.LS - n.ES
	}

	for _, id := range result.Order {
		if result.Nodes[id].IsCritical() {
			result.Critical[id] = true
			result.CriticalPath = append(result.CriticalPath, id)
		}
	}

	if len(result.Critical) == 0 {
		result.markLongestChain(g)
	}

	return result, nil
}

// span is the interval a task occupies in the analysis.
type span struct {
	start time.Time
	dur   int
}

// spansOf returns the span of every dated task by id: the rollup for a group
// with a dated descendant, otherwise its own start and duration.
func spansOf(tasks []task.Task, h hierarchy.Hierarchy) map[int]span {
	summaries := hierarchy.SummarizeWith(tasks, h)
	seen := make(map[int]bool, len(tasks))
	spans := make(map[int]span, len(tasks))
	for i, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		if s, ok := summaries[i]; ok {
			spans[t.ID] = span{start: s.Start, dur: s.Dur}
		} else if !t.Start.IsZero() {
			spans[t.ID] = span{start: t.Start, dur: t.Dur}
		}
	}
	return spans
}

// enclosingGroups maps each task id to the ids of every group containing it.
func enclosingGroups(tasks []task.Task, h hierarchy.Hierarchy) map[int][]int {
	enclosing := make(map[int][]int)
	for i, desc := range h.Descendants {
		groupID := tasks[i].ID
		for _, j := range desc {
			if id := tasks[j].ID; id != groupID {
				enclosing[id] = append(enclosing[id], groupID)
			}
		}
	}
	return enclosing
}

// latestFinishBound inverts the forward dependency rule: the latest a
// predecessor lasting predDur may finish without delaying succ.
func latestFinishBound(dt task.DepType, succ *Node, predDur int) float64 {
	switch task.NormalizeDepType(dt) {
	case task.StartToStart:
		return succ.LS + float64(predDur)
	case task.FinishToFinish:
		return succ.LF
	case task.StartToFinish:
		return succ.LF + float64(predDur)
	default:
		return succ.LS
	}
}

// markLongestChain flags the predecessor chain ending at the node that
// finishes last. Used only when no node came out with zero float.
func (r *Result) markLongestChain(g *Graph) {
	var end *Node
	for _, id := range r.Order {
		n := r.Nodes[id]
		if math.Abs(n.EF-r.ProjectEnd) < criticalTolerance {
			end = n
			break
		}
	}
	if end == nil {
		return
	}

	var chain []int
	for id, ok := end.ID, true; ok && !r.Critical[id]; id, ok = g.predecessor(id) {
		if _, dated := r.Nodes[id]; !dated {
			break
		}
		r.Critical[id] = true
		chain = append([]int{id}, chain...)
	}
	r.CriticalPath = chain
}

// CriticalPathIDs returns the set of task ids on the critical path.
func CriticalPathIDs(tasks []task.Task) (map[int]bool, error) {
	r, err := Analyze(tasks)
	if err != nil {
		return nil, err
	}
	return r.Critical, nil
}
