package domain

import "testing"

func TestTaskStatus_Valid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusProgress, StatusCompleted} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	for _, s := range []TaskStatus{"", "done", "PENDING", "in_progress"} {
		if s.Valid() {
			t.Fatalf("%q should not be valid", s)
		}
	}
}

func TestTaskPriority_Valid(t *testing.T) {
	for _, p := range []TaskPriority{PriorityLow, PriorityMiddle, PriorityHigh} {
		if !p.Valid() {
			t.Fatalf("%s should be valid", p)
		}
	}
	for _, p := range []TaskPriority{"", "urgent", "HIGH", "medium"} {
		if p.Valid() {
			t.Fatalf("%q should not be valid", p)
		}
	}
}
