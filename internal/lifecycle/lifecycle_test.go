package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/thenoetrevino/tally/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func pendingTask() *models.Task {
	t := NewTask(1, "Pour foundation")
	t.ID = 10
	return t
}

func completedTask(at time.Time) *models.Task {
	t := pendingTask()
	t.Status = models.TaskStatusCompleted
	t.CompletedAt = &at
	return t
}

func assertInvariant(t *testing.T, task *models.Task) {
	t.Helper()
	if err := CheckInvariant(task); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

// ============================================================================
// NEW TASK POLICY
// ============================================================================

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask(7, "Buy lumber")

	if task.Status != models.TaskStatusPending {
		t.Errorf("Expected status pending, got %q", task.Status)
	}
	if task.CompletedAt != nil {
		t.Error("Expected completed_at to be nil")
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Expected priority medium, got %q", task.Priority)
	}
	if task.ProjectID != 7 || task.Title != "Buy lumber" {
		t.Errorf("Unexpected descriptive fields: %+v", task)
	}
	assertInvariant(t, task)
}

// ============================================================================
// MARK COMPLETE
// ============================================================================

func TestMarkComplete_FromPending(t *testing.T) {
	task := pendingTask()

	done, err := MarkComplete(task, fixedClock)
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}

	if done.Status != models.TaskStatusCompleted {
		t.Errorf("Expected status completed, got %q", done.Status)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(fixedNow) {
		t.Errorf("Expected completed_at %v, got %v", fixedNow, done.CompletedAt)
	}
	assertInvariant(t, done)

	// Input untouched
	if task.Status != models.TaskStatusPending || task.CompletedAt != nil {
		t.Errorf("MarkComplete mutated its argument: %+v", task)
	}
}

func TestMarkComplete_Twice(t *testing.T) {
	done, err := MarkComplete(pendingTask(), fixedClock)
	if err != nil {
		t.Fatalf("first MarkComplete failed: %v", err)
	}

	later := func() time.Time { return fixedNow.Add(time.Hour) }
	again, err := MarkComplete(done, later)
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("Expected ErrAlreadyCompleted, got %v", err)
	}
	if again != nil {
		t.Error("Expected nil task on failure")
	}
	if !done.CompletedAt.Equal(fixedNow) {
		t.Errorf("completed_at changed by rejected call: %v", done.CompletedAt)
	}
}

// ============================================================================
// UNDO COMPLETE
// ============================================================================

func TestUndoComplete_LandsInProgress(t *testing.T) {
	undone, err := UndoComplete(completedTask(fixedNow))
	if err != nil {
		t.Fatalf("UndoComplete failed: %v", err)
	}

	if undone.Status != models.TaskStatusInProgress {
		t.Errorf("Expected status in progress, got %q", undone.Status)
	}
	if undone.CompletedAt != nil {
		t.Error("Expected completed_at to be cleared")
	}
	assertInvariant(t, undone)
}

func TestUndoComplete_NotCompleted(t *testing.T) {
	for _, status := range []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress} {
		task := pendingTask()
		task.Status = status

		if _, err := UndoComplete(task); !errors.Is(err, ErrNotCompleted) {
			t.Errorf("status %q: expected ErrNotCompleted, got %v", status, err)
		}
		if task.Status != status {
			t.Errorf("status %q: task was mutated to %q", status, task.Status)
		}
	}
}

func TestMarkThenUndo_RoundTrip(t *testing.T) {
	done, err := MarkComplete(pendingTask(), fixedClock)
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	undone, err := UndoComplete(done)
	if err != nil {
		t.Fatalf("UndoComplete failed: %v", err)
	}

	// Never restores the pre-completion status
	if undone.Status != models.TaskStatusInProgress {
		t.Errorf("Expected in progress after round trip, got %q", undone.Status)
	}
	if undone.CompletedAt != nil {
		t.Error("Expected completed_at nil after round trip")
	}
}

// ============================================================================
// SET STATUS
// ============================================================================

func TestSetStatus_ClearsCompletedAt(t *testing.T) {
	task := completedTask(fixedNow)

	next, err := SetStatus(task, models.TaskStatusPending)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	if next.Status != models.TaskStatusPending {
		t.Errorf("Expected pending, got %q", next.Status)
	}
	if next.CompletedAt != nil {
		t.Error("Expected completed_at to be cleared")
	}
	assertInvariant(t, next)
}

func TestSetStatus_BetweenOpenStates(t *testing.T) {
	next, err := SetStatus(pendingTask(), models.TaskStatusInProgress)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if next.Status != models.TaskStatusInProgress || next.CompletedAt != nil {
		t.Errorf("Unexpected state: %+v", next)
	}
}

func TestSetStatus_CompletedDoesNotStamp(t *testing.T) {
	if _, err := SetStatus(pendingTask(), models.TaskStatusCompleted); !errors.Is(err, ErrCompletionNotRecorded) {
		t.Fatalf("Expected ErrCompletionNotRecorded, got %v", err)
	}

	task := completedTask(fixedNow)
	next, err := SetStatus(task, models.TaskStatusCompleted)
	if err != nil {
		t.Fatalf("SetStatus on completed task failed: %v", err)
	}
	if !next.CompletedAt.Equal(fixedNow) {
		t.Errorf("completed_at changed: %v", next.CompletedAt)
	}
}

func TestSetStatus_Invalid(t *testing.T) {
	if _, err := SetStatus(pendingTask(), models.TaskStatus("blocked")); !errors.Is(err, models.ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

// ============================================================================
// INVARIANT
// ============================================================================

func TestCheckInvariant(t *testing.T) {
	stamp := fixedNow

	tests := []struct {
		name    string
		status  models.TaskStatus
		at      *time.Time
		wantErr bool
	}{
		{"pending without timestamp", models.TaskStatusPending, nil, false},
		{"completed with timestamp", models.TaskStatusCompleted, &stamp, false},
		{"completed without timestamp", models.TaskStatusCompleted, nil, true},
		{"in progress with timestamp", models.TaskStatusInProgress, &stamp, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := pendingTask()
			task.Status = tt.status
			task.CompletedAt = tt.at

			err := CheckInvariant(task)
			if tt.wantErr && !errors.Is(err, ErrInconsistentState) {
				t.Errorf("Expected ErrInconsistentState, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCheckSnapshot(t *testing.T) {
	good := &models.ProjectSnapshot{Tasks: []*models.Task{pendingTask(), completedTask(fixedNow)}}
	if err := CheckSnapshot(good); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	bad := pendingTask()
	bad.Status = models.TaskStatusCompleted
	good.Tasks = append(good.Tasks, bad)
	if err := CheckSnapshot(good); !errors.Is(err, ErrInconsistentState) {
		t.Errorf("Expected ErrInconsistentState, got %v", err)
	}
}
