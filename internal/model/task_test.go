package model

import (
	"testing"
	"time"
)

func TestCloneSharesNoPointers(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	parent := uint(7)
	task := Task{
		ID:           1,
		Title:        "original",
		StartTime:    &start,
		ParentTaskID: &parent,
	}

	clone := task.Clone()
	*clone.StartTime = clone.StartTime.Add(time.Hour)
	*clone.ParentTaskID = 99

	if !task.StartTime.Equal(start) {
		t.Fatalf("clone mutation leaked into original start time: %v", task.StartTime)
	}
	if *task.ParentTaskID != parent {
		t.Fatalf("clone mutation leaked into original parent: %d", *task.ParentTaskID)
	}
}

func TestParseStatusRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusTodo, StatusInProgress, StatusDone, StatusArchived, StatusTemplate} {
		parsed, err := ParseStatus(status.String())
		if err != nil || parsed != status {
			t.Errorf("ParseStatus(%q) = %v, %v", status.String(), parsed, err)
		}
	}
	if _, err := ParseStatus("bogus"); err == nil {
		t.Error("ParseStatus(bogus) should fail")
	}
}

func TestParsePriorityRoundTrip(t *testing.T) {
	for _, priority := range []Priority{PriorityMin, PriorityLow, PriorityMedium, PriorityHigh, PriorityMax} {
		parsed, err := ParsePriority(priority.String())
		if err != nil || parsed != priority {
			t.Errorf("ParsePriority(%q) = %v, %v", priority.String(), parsed, err)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority(urgent) should fail")
	}
}
