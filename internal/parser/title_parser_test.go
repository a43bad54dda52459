package parser

import (
	"testing"
	"time"
)

func TestParseTitleExtractsEverything(t *testing.T) {
	result := ParseTitle("Buy milk @groceries due:tomorrow remind:30min")

	if result.Title != "Buy milk" {
		t.Errorf("title = %q, want %q", result.Title, "Buy milk")
	}
	if result.Folder != "groceries" {
		t.Errorf("folder = %q, want %q", result.Folder, "groceries")
	}
	if result.DueDate == nil {
		t.Error("due date not parsed")
	}
	if result.RemindAt == nil {
		t.Error("reminder not parsed")
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestParseTitlePlain(t *testing.T) {
	result := ParseTitle("Just a task")

	if result.Title != "Just a task" {
		t.Errorf("title = %q", result.Title)
	}
	if result.Folder != "" || result.DueDate != nil || result.RemindAt != nil {
		t.Error("plain title grew metadata out of nowhere")
	}
}

func TestParseTitleBadDueCollectsError(t *testing.T) {
	result := ParseTitle("Fix roof due:someday")

	if result.Title != "Fix roof" {
		t.Errorf("title = %q, want %q", result.Title, "Fix roof")
	}
	if result.DueDate != nil {
		t.Error("invalid due expression produced a date")
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestNormalizeExpr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3days", "3 days"},
		{"30min", "30 min"},
		{"1week", "1 week"},
		{"2 days", "2 days"},
		{"tomorrow", "tomorrow"},
		{"15/12/2026", "15/12/2026"},
	}

	for _, tt := range tests {
		if got := normalizeExpr(tt.in); got != tt.want {
			t.Errorf("normalizeExpr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDueDateKeywords(t *testing.T) {
	now := time.Now()

	today, err := ParseDueDate("today")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if today.Day() != now.Day() || today.Hour() != 23 || today.Minute() != 59 {
		t.Errorf("today = %v, want end of the current day", today)
	}

	tomorrow, err := ParseDueDate("Tomorrow")
	if err != nil {
		t.Fatalf("tomorrow: %v", err)
	}
	if !tomorrow.After(*today) {
		t.Errorf("tomorrow %v is not after today %v", tomorrow, today)
	}
}

func TestParseDueDateAbsolute(t *testing.T) {
	due, err := ParseDueDate("15/12/2026")
	if err != nil {
		t.Fatalf("ParseDueDate: %v", err)
	}
	if due.Day() != 15 || due.Month() != time.December || due.Year() != 2026 {
		t.Errorf("got %v, want 15 Dec 2026", due)
	}

	if _, err := ParseDueDate("31/02/2026"); err == nil {
		t.Error("impossible calendar date accepted")
	}
	if _, err := ParseDueDate("01/01/2020"); err == nil {
		t.Error("year below range accepted")
	}
}

func TestParseDueDateRelative(t *testing.T) {
	due, err := ParseDueDate("3 days")
	if err != nil {
		t.Fatalf("ParseDueDate: %v", err)
	}
	if due.Before(time.Now().AddDate(0, 0, 2)) {
		t.Errorf("3 days resolved too early: %v", due)
	}

	if _, err := ParseDueDate("400 days"); err == nil {
		t.Error("out-of-range day count accepted")
	}
	if _, err := ParseDueDate("3 fortnights"); err == nil {
		t.Error("unknown unit accepted")
	}
}

func TestParseDueDateEmpty(t *testing.T) {
	due, err := ParseDueDate("")
	if err != nil || due != nil {
		t.Errorf("empty input should be a nil no-op, got %v, %v", due, err)
	}
}

func TestParseReminderMinutes(t *testing.T) {
	before := time.Now()
	remind, err := ParseReminder("30 minutes")
	if err != nil {
		t.Fatalf("ParseReminder: %v", err)
	}
	diff := remind.Sub(before)
	if diff < 29*time.Minute || diff > 31*time.Minute {
		t.Errorf("reminder offset = %v, want about 30m", diff)
	}

	if _, err := ParseReminder("0 minutes"); err == nil {
		t.Error("zero minutes accepted")
	}
	if _, err := ParseReminder("2000 minutes"); err == nil {
		t.Error("offset past one day accepted")
	}
}

func TestParseReminderFallsBackToDueFormats(t *testing.T) {
	remind, err := ParseReminder("tomorrow")
	if err != nil {
		t.Fatalf("ParseReminder: %v", err)
	}
	if remind == nil || !remind.After(time.Now()) {
		t.Errorf("tomorrow reminder = %v", remind)
	}
}
