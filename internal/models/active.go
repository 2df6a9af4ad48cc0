package models

// ActiveTasks is the read-time projection applied wherever tasks leave the
// store: soft-deleted tasks are dropped and every remaining task carries only
// its active subtasks. The input is not modified.
func ActiveTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		out = append(out, t.Active())
	}
	return out
}

// Active returns a copy of t whose Subtasks holds only non-deleted entries.
func (t Task) Active() Task {
	t.Subtasks = ActiveSubtasks(t.Subtasks)
	return t
}

// ActiveSubtasks returns the non-deleted subtasks in stored order.
func ActiveSubtasks(subtasks []Subtask) []Subtask {
	out := make([]Subtask, 0, len(subtasks))
	for _, s := range subtasks {
		if !s.Deleted {
			out = append(out, s)
		}
	}
	return out
}
