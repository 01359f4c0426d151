package task

import (
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC)
}

func TestSetCompletionStampsLastLineOnly(t *testing.T) {
	text := "first line\nsecond line\nthird line"
	got := SetCompletion(text, "completion", true, fixedClock)
	want := "first line\nsecond line\nthird line [completion:: 2024-03-09]"
	if got != want {
		t.Fatalf("expected stamp on last line only, got %q", got)
	}
}

func TestSetCompletionSingleLine(t *testing.T) {
	got := SetCompletion("buy milk", "completion", true, fixedClock)
	if got != "buy milk [completion:: 2024-03-09]" {
		t.Fatalf("expected completion stamp, got %q", got)
	}
}

func TestSetCompletionReplacesExistingStamp(t *testing.T) {
	text := "buy milk [completion:: 2020-01-01]"
	got := SetCompletion(text, "completion", true, fixedClock)
	if got != "buy milk [completion:: 2024-03-09]" {
		t.Fatalf("expected old stamp replaced, got %q", got)
	}
}

func TestSetCompletionRemovalTrimsTrailingBlanks(t *testing.T) {
	text := "buy milk [completion:: 2024-03-09]\n\n"
	got := SetCompletion(text, "completion", false, fixedClock)
	if got != "buy milk" {
		t.Fatalf("expected stamp removed and blanks trimmed, got %q", got)
	}
}

func TestSetCompletionRemovesFromEveryLine(t *testing.T) {
	text := "a [completion:: 2020-01-01]\nb [completion:: 2021-02-02]"
	got := SetCompletion(text, "completion", false, fixedClock)
	if got != "a\nb" {
		t.Fatalf("expected every stamp removed, got %q", got)
	}
}

func TestSetCompletionUsesCalendarDateOnly(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	}
	got := SetCompletion("late night", "done", true, clock)
	if got != "late night [done:: 2024-12-31]" {
		t.Fatalf("expected calendar date without time, got %q", got)
	}
}

func TestSetCompletionCustomKeyIsQuoted(t *testing.T) {
	// Keys with regexp metacharacters must be treated literally.
	text := "task [done.when:: 2020-01-01]"
	got := SetCompletion(text, "done.when", false, fixedClock)
	if got != "task" {
		t.Fatalf("expected literal key match, got %q", got)
	}
}
