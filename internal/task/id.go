package task

// NextID returns the smallest id greater than every id in tasks.
// Ids are never reused while a higher one exists, so references stay stable.
func NextID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		highest = max(highest, t.ID)
	}
	return highest + 1
}

// IndexByID maps each task id to its position in tasks.
// On duplicate ids the first occurrence wins.
func IndexByID(tasks []Task) map[int]int {
	idx := make(map[int]int, len(tasks))
	for i, t := range tasks {
		if _, ok := idx[t.ID]; !ok {
			idx[t.ID] = i
		}
	}
	return idx
}

// Clone returns a copy of tasks whose Dependencies slices are not shared.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].Dependencies != nil {
			out[i].Dependencies = append([]Dependency(nil), out[i].Dependencies...)
		}
	}
	return out
}
