package task

import "time"

// Type distinguishes ordinary work from zero-length markers.
type Type string

const (
	TypeTask      Type = "Task"
	TypeMilestone Type = "Milestone"
)

// DepType governs how a predecessor's interval constrains a task's start.
type DepType string

const (
	FinishToStart  DepType = "FS"
	StartToStart   DepType = "SS"
	FinishToFinish DepType = "FF"
	StartToFinish  DepType = "SF"
)

// DepLogic combines the candidates of a multi-predecessor task.
type DepLogic string

const (
	LogicAll DepLogic = "ALL"
	LogicAny DepLogic = "ANY"
)

// Dependency is one edge of a multi-predecessor task.
type Dependency struct {
	PredecessorID int     `yaml:"predecessor_id" json:"predecessor_id" validate:"gt=0"`
	DepType       DepType `yaml:"dep_type,omitempty" json:"dep_type,omitempty" validate:"omitempty,oneof=FS SS FF SF"`
}

// Task is a single row of a plan. Its position in the plan slice, together with
// Indent, defines grouping; there is no parent pointer.
type Task struct {
	ID     int       `yaml:"id" json:"id" validate:"gt=0"`
	Name   string    `yaml:"name" json:"name"`
	Type   Type      `yaml:"type" json:"type" validate:"oneof=Task Milestone"`
	Indent int       `yaml:"indent" json:"indent" validate:"gte=0"`
	Start  time.Time `yaml:"-" json:"start"`
	Dur    int       `yaml:"dur" json:"dur" validate:"gte=0"`
	Pct    int       `yaml:"pct" json:"pct" validate:"gte=0,lte=100"`

	// PredecessorID is the single-predecessor edge; 0 means none.
	PredecessorID int          `yaml:"predecessor_id,omitempty" json:"predecessor_id,omitempty" validate:"gte=0"`
	DepType       DepType      `yaml:"dep_type,omitempty" json:"dep_type,omitempty" validate:"omitempty,oneof=FS SS FF SF"`
	Dependencies  []Dependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty" validate:"dive"`
	DepLogic      DepLogic     `yaml:"dep_logic,omitempty" json:"dep_logic,omitempty" validate:"omitempty,oneof=ALL ANY"`
}

// EffectiveDepType returns the task's single-edge dependency type, FS when unset.
func (t Task) EffectiveDepType() DepType {
	return NormalizeDepType(t.DepType)
}

// EffectiveLogic returns the combinator for Dependencies, ALL when unset.
func (t Task) EffectiveLogic() DepLogic {
	if t.DepLogic == "" {
		return LogicAll
	}
	return t.DepLogic
}

// HasPredecessor reports whether the task carries any dependency edge.
func (t Task) HasPredecessor() bool {
	return t.PredecessorID != 0 || len(t.Dependencies) > 0
}

// NormalizeDepType maps the empty dependency type to FS.
func NormalizeDepType(d DepType) DepType {
	if d == "" {
		return FinishToStart
	}
	return d
}

// IsValidType checks if a task type string is valid.
func IsValidType(t Type) bool {
	switch t {
	case TypeTask, TypeMilestone:
		return true
	default:
		return false
	}
}

// IsValidDepType checks if a dependency type is one of FS, SS, FF, SF.
func IsValidDepType(d DepType) bool {
	switch d {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	default:
		return false
	}
}

// IsValidDepLogic checks if a combinator string is valid.
func IsValidDepLogic(l DepLogic) bool {
	switch l {
	case LogicAll, LogicAny:
		return true
	default:
		return false
	}
}
