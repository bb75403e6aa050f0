package output

import (
	"encoding/json"

	"github.com/abatilo/tempo/internal/dates"
	"github.com/abatilo/tempo/internal/deps"
	"github.com/abatilo/tempo/internal/task"
	"github.com/abatilo/tempo/internal/view"
)

// JSONFormatter formats output as JSON. Dates are always ISO.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Type          task.Type         `json:"type"`
	Indent        int               `json:"indent"`
	Start         string            `json:"start,omitempty"`
	Finish        string            `json:"finish,omitempty"`
	Dur           int               `json:"dur"`
	BusinessDays  int               `json:"business_days"`
	Pct           int               `json:"pct"`
	PredecessorID int               `json:"predecessor_id,omitempty"`
	DepType       task.DepType      `json:"dep_type,omitempty"`
	Dependencies  []task.Dependency `json:"dependencies,omitempty"`
	DepLogic      task.DepLogic     `json:"dep_logic,omitempty"`
}

func toTaskJSON(t task.Task) taskJSON {
	tj := taskJSON{
		ID:            t.ID,
		Name:          t.Name,
		Type:          t.Type,
		Indent:        t.Indent,
		Dur:           t.Dur,
		Pct:           t.Pct,
		PredecessorID: t.PredecessorID,
		Dependencies:  t.Dependencies,
	}
	if t.PredecessorID != 0 {
		tj.DepType = t.EffectiveDepType()
	}
	if len(t.Dependencies) > 0 {
		tj.DepLogic = t.EffectiveLogic()
	}
	if !t.Start.IsZero() {
		finish := finishOf(t)
		tj.Start = dates.ISO(t.Start)
		tj.Finish = dates.ISO(finish)
		tj.BusinessDays = dates.CountBusinessDays(t.Start, finish)
	}
	return tj
}

// rowJSON is a visible row: the task plus its projection flags.
type rowJSON struct {
	taskJSON
	IsGroup   bool `json:"is_group"`
	Collapsed bool `json:"collapsed"`
	Critical  bool `json:"critical"`
}

// FormatRows formats the visible projection as a JSON array.
func (f *JSONFormatter) FormatRows(rows []view.Row, critical map[int]bool) string {
	out := make([]rowJSON, len(rows))
	for i, r := range rows {
		out[i] = rowJSON{
			taskJSON:  toTaskJSON(r.Task),
			IsGroup:   r.IsGroup,
			Collapsed: r.Collapsed,
			Critical:  critical[r.ID],
		}
	}
	return marshalJSON(out)
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t task.Task) string {
	return marshalJSON(toTaskJSON(t))
}

// criticalJSON is the JSON representation of a CPM result.
type criticalJSON struct {
	ProjectStart string      `json:"project_start,omitempty"`
	ProjectEnd   float64     `json:"project_end"`
	Nodes        []deps.Node `json:"nodes"`
	CriticalPath []int       `json:"critical_path"`
}

// FormatCritical formats the CPM result as JSON, nodes in topological order.
func (f *JSONFormatter) FormatCritical(r *deps.Result, _ []task.Task) string {
	out := criticalJSON{Nodes: []deps.Node{}, CriticalPath: []int{}}
	if r != nil {
		out.ProjectStart = dates.ISO(r.ProjectStart)
		out.ProjectEnd = r.ProjectEnd
		for _, id := range r.Order {
			out.Nodes = append(out.Nodes, *r.Nodes[id])
		}
		if r.CriticalPath != nil {
			out.CriticalPath = r.CriticalPath
		}
	}
	return marshalJSON(out)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
