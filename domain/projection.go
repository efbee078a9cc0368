package domain

// HomePreviewCount caps the "upcoming" strip on the home screen. The preview
// takes the first incomplete tasks in repository order; see DESIGN.md for the
// open product question on ordering.
const HomePreviewCount = 4

// Projections are pure, order-preserving filters over a task collection.
// They assume pre-validated input and never mutate or reorder the source.

// DueToday returns incomplete tasks due on the reference day.
func DueToday(tasks []Task, today string) []Task {
	return filter(tasks, func(t *Task) bool {
		return t.DueDate == today && !t.Completed
	})
}

// HomePreview returns the first HomePreviewCount incomplete tasks.
func HomePreview(tasks []Task) []Task {
	out := filter(tasks, func(t *Task) bool { return !t.Completed })
	if len(out) > HomePreviewCount {
		out = out[:HomePreviewCount]
	}
	return out
}

// Upcoming returns incomplete tasks due strictly after the reference day.
// Date strings compare lexicographically because they are ISO dates.
func Upcoming(tasks []Task, today string) []Task {
	return filter(tasks, func(t *Task) bool {
		return t.DueDate > today && !t.Completed
	})
}

// CompletedTasks returns every completed task.
func CompletedTasks(tasks []Task) []Task {
	return filter(tasks, func(t *Task) bool { return t.Completed })
}

// OnDay returns tasks placed on the viewed day. A task's placement is its
// scheduled date when a schedule exists; the due date is the fallback only
// for unscheduled tasks.
func OnDay(tasks []Task, viewedDate string) []Task {
	if viewedDate == "" {
		return nil
	}
	return filter(tasks, func(t *Task) bool {
		return t.PlacementDate() == viewedDate
	})
}

// Backlog returns incomplete tasks with no calendar slot (the unscheduled
// sidebar).
func Backlog(tasks []Task) []Task {
	return filter(tasks, func(t *Task) bool {
		return t.Schedule == nil && !t.Completed
	})
}

func filter(tasks []Task, keep func(*Task) bool) []Task {
	var out []Task
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}
