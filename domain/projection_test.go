package domain

import "testing"

func fixtureTasks(t *testing.T) []Task {
	t.Helper()
	scheduled := Task{ID: "t3", Title: "Gym", DueDate: "2024-03-02"}
	if err := scheduled.ScheduleAt("2024-03-01", 7, 0); err != nil {
		t.Fatalf("fixture schedule: %v", err)
	}
	return []Task{
		{ID: "t1", Title: "Write report", DueDate: "2024-03-01"},
		{ID: "t2", Title: "Old retro notes", DueDate: "2024-03-01", Completed: true},
		scheduled,
		{ID: "t4", Title: "Taxes", DueDate: "2024-03-10"},
		{ID: "t5", Title: "Dentist", DueDate: "2024-03-04"},
		{ID: "t6", Title: "Archive", Completed: true},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestDueToday(t *testing.T) {
	// t2 is also due today but completed, so only t1 remains.
	assertIDs(t, DueToday(fixtureTasks(t), "2024-03-01"), "t1")
}

func TestHomePreviewCapsAtFour(t *testing.T) {
	assertIDs(t, HomePreview(fixtureTasks(t)), "t1", "t3", "t4", "t5")
}

func TestUpcoming(t *testing.T) {
	assertIDs(t, Upcoming(fixtureTasks(t), "2024-03-01"), "t3", "t4", "t5")
}

func TestCompletedTasks(t *testing.T) {
	assertIDs(t, CompletedTasks(fixtureTasks(t)), "t2", "t6")
}

func TestOnDayUsesScheduleThenDueDate(t *testing.T) {
	tasks := fixtureTasks(t)
	// t3 is scheduled on 03-01 even though it is due 03-02; t1 and t2 fall
	// back to their due date because they hold no schedule.
	assertIDs(t, OnDay(tasks, "2024-03-01"), "t1", "t2", "t3")
	// t3 must not also appear on its due date.
	assertIDs(t, OnDay(tasks, "2024-03-02"))
	if got := OnDay(tasks, ""); got != nil {
		t.Fatalf("empty viewed date should project nothing, got %v", ids(got))
	}
}

func TestBacklog(t *testing.T) {
	assertIDs(t, Backlog(fixtureTasks(t)), "t1", "t4", "t5")
}

func TestProjectionsPreserveSourceOrder(t *testing.T) {
	tasks := []Task{
		{ID: "b", DueDate: "2024-03-09"},
		{ID: "a", DueDate: "2024-03-08"},
		{ID: "c", DueDate: "2024-03-07"},
	}
	assertIDs(t, Upcoming(tasks, "2024-03-01"), "b", "a", "c")
}
