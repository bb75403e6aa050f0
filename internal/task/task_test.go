//nolint:testpackage // Tests require internal access for thorough testing
package task

import "testing"

func TestIsValidType(t *testing.T) {
	tests := []struct {
		typ   Type
		valid bool
	}{
		{TypeTask, true},
		{TypeMilestone, true},
		{Type("Epic"), false},
		{Type(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := IsValidType(tt.typ); got != tt.valid {
				t.Errorf("IsValidType(%q) = %v, want %v", tt.typ, got, tt.valid)
			}
		})
	}
}

func TestIsValidDepType(t *testing.T) {
	tests := []struct {
		dep   DepType
		valid bool
	}{
		{FinishToStart, true},
		{StartToStart, true},
		{FinishToFinish, true},
		{StartToFinish, true},
		{DepType("fs"), false},
		{DepType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.dep), func(t *testing.T) {
			if got := IsValidDepType(tt.dep); got != tt.valid {
				t.Errorf("IsValidDepType(%q) = %v, want %v", tt.dep, got, tt.valid)
			}
		})
	}
}

func TestIsValidDepLogic(t *testing.T) {
	if !IsValidDepLogic(LogicAll) || !IsValidDepLogic(LogicAny) {
		t.Error("ALL and ANY should be valid")
	}
	if IsValidDepLogic(DepLogic("SOME")) {
		t.Error("SOME should not be valid")
	}
}

func TestDefaults(t *testing.T) {
	var tk Task
	if got := tk.EffectiveDepType(); got != FinishToStart {
		t.Errorf("EffectiveDepType() = %q, want FS", got)
	}
	if got := tk.EffectiveLogic(); got != LogicAll {
		t.Errorf("EffectiveLogic() = %q, want ALL", got)
	}
	if tk.HasPredecessor() {
		t.Error("zero task should have no predecessor")
	}

	tk.Dependencies = []Dependency{{PredecessorID: 3}}
	if !tk.HasPredecessor() {
		t.Error("task with dependencies should have a predecessor")
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Errorf("NextID(nil) = %d, want 1", got)
	}

	tasks := []Task{{ID: 4}, {ID: 2}, {ID: 9}}
	if got := NextID(tasks); got != 10 {
		t.Errorf("NextID = %d, want 10", got)
	}
}

func TestIndexByID(t *testing.T) {
	tasks := []Task{{ID: 7}, {ID: 3}, {ID: 7}}
	idx := IndexByID(tasks)

	if idx[7] != 0 {
		t.Errorf("IndexByID[7] = %d, want 0 (first occurrence)", idx[7])
	}
	if idx[3] != 1 {
		t.Errorf("IndexByID[3] = %d, want 1", idx[3])
	}
	if _, ok := idx[99]; ok {
		t.Error("IndexByID should not contain unknown ids")
	}
}

func TestCloneDoesNotShareDependencies(t *testing.T) {
	orig := []Task{{ID: 1, Dependencies: []Dependency{{PredecessorID: 2}}}}
	cp := Clone(orig)

	cp[0].Dependencies[0].PredecessorID = 5
	cp[0].Name = "changed"

	if orig[0].Dependencies[0].PredecessorID != 2 {
		t.Error("Clone shares Dependencies backing array")
	}
	if orig[0].Name != "" {
		t.Error("Clone shares task values")
	}
}
