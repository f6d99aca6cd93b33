package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/newbeginning12/flashcal/internal/interval"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func testInterval(title, start, end string) *interval.Interval {
	return &interval.Interval{
		Title:     title,
		Day:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local),
		Start:     start,
		End:       end,
		Status:    interval.StatusPending,
		CreatedAt: time.Now(),
	}
}

func TestCreateInterval(t *testing.T) {
	repo := newTestRepo(t)

	iv := testInterval("Write unit tests", "09:00", "11:00")
	iv.ColorTag = "teal"
	iv.Tags = []string{"work", "focus"}
	iv.Notes = "cover the edge cases"

	if err := repo.CreateInterval(context.Background(), iv); err != nil {
		t.Fatalf("CreateInterval failed: %v", err)
	}
	if iv.ID == 0 {
		t.Error("expected ID to be set after insert")
	}

	got, err := repo.GetInterval(context.Background(), iv.ID)
	if err != nil {
		t.Fatalf("GetInterval failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetInterval returned nil")
	}
	if got.Title != iv.Title || got.Start != "09:00" || got.End != "11:00" {
		t.Errorf("got %+v", got)
	}
	if got.ColorTag != "teal" {
		t.Errorf("colorTag = %q", got.ColorTag)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "work" || got.Tags[1] != "focus" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.Notes != iv.Notes {
		t.Errorf("notes = %q", got.Notes)
	}
	if !got.Day.Equal(iv.Day) {
		t.Errorf("day = %v, want %v", got.Day, iv.Day)
	}
}

func TestCreateInterval_Invalid(t *testing.T) {
	repo := newTestRepo(t)

	iv := testInterval("Inverted", "11:00", "09:00")
	err := repo.CreateInterval(context.Background(), iv)
	if !errors.Is(err, interval.ErrEndBeforeStart) {
		t.Errorf("err = %v, want ErrEndBeforeStart", err)
	}
}

func TestCreateInterval_OverlapsAllowed(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateInterval(ctx, testInterval("A", "09:00", "10:30")); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	// The same slot again: storage accepts it, the grid lays it out side
	// by side.
	if err := repo.CreateInterval(ctx, testInterval("B", "09:00", "10:30")); err != nil {
		t.Errorf("overlapping insert rejected: %v", err)
	}
}

func TestCreateIntervals_Batch(t *testing.T) {
	repo := newTestRepo(t)

	ivs := []*interval.Interval{
		testInterval("One", "09:00", "10:00"),
		testInterval("Two", "10:00", "11:00"),
		testInterval("Three", "11:00", "12:00"),
	}

	if err := repo.CreateIntervals(context.Background(), ivs); err != nil {
		t.Fatalf("CreateIntervals failed: %v", err)
	}
	for i, iv := range ivs {
		if iv.ID == 0 {
			t.Errorf("interval %d: ID not set", i)
		}
	}
}

func TestCreateIntervals_InvalidAbortsBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ivs := []*interval.Interval{
		testInterval("Good", "09:00", "10:00"),
		testInterval("", "10:00", "11:00"), // empty title
	}

	if err := repo.CreateIntervals(ctx, ivs); err == nil {
		t.Fatal("expected error for invalid batch member")
	}

	day := ivs[0].Day
	got, err := repo.ListIntervalsByDateRange(ctx, day, day)
	if err != nil {
		t.Fatalf("ListIntervalsByDateRange failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("batch partially applied: %d rows", len(got))
	}
}

func TestGetInterval_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetInterval(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetInterval failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestListIntervalsByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)

	late := testInterval("Late", "15:00", "16:00")
	early := testInterval("Early", "08:00", "09:00")
	nextWeek := testInterval("Next week", "09:00", "10:00")
	nextWeek.Day = monday.AddDate(0, 0, 9)
	wednesday := testInterval("Midweek", "10:00", "11:00")
	wednesday.Day = monday.AddDate(0, 0, 2)

	for _, iv := range []*interval.Interval{late, early, nextWeek, wednesday} {
		if err := repo.CreateInterval(ctx, iv); err != nil {
			t.Fatalf("CreateInterval failed: %v", err)
		}
	}

	got, err := repo.ListIntervalsByDateRange(ctx, monday, monday.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("ListIntervalsByDateRange failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d intervals, want 3", len(got))
	}

	// Ordered by day then start time.
	wantTitles := []string{"Early", "Late", "Midweek"}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("result %d = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestMoveInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := testInterval("Movable", "09:00", "10:30")
	if err := repo.CreateInterval(ctx, iv); err != nil {
		t.Fatalf("CreateInterval failed: %v", err)
	}

	newDay := iv.Day.AddDate(0, 0, 2)
	if err := repo.MoveInterval(ctx, iv.ID, newDay, "14:15"); err != nil {
		t.Fatalf("MoveInterval failed: %v", err)
	}

	got, err := repo.GetInterval(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterval failed: %v", err)
	}
	if !got.Day.Equal(newDay) {
		t.Errorf("day = %v, want %v", got.Day, newDay)
	}
	if got.Start != "14:15" || got.End != "15:45" {
		t.Errorf("times = %s-%s, want 14:15-15:45 (duration preserved)", got.Start, got.End)
	}
}

func TestMoveInterval_ClampsAtMidnight(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := testInterval("Late shift", "09:00", "10:00")
	if err := repo.CreateInterval(ctx, iv); err != nil {
		t.Fatalf("CreateInterval failed: %v", err)
	}

	if err := repo.MoveInterval(ctx, iv.ID, iv.Day, "23:30"); err != nil {
		t.Fatalf("MoveInterval failed: %v", err)
	}

	got, _ := repo.GetInterval(ctx, iv.ID)
	if got.Start != "23:00" || got.End != "24:00" {
		t.Errorf("times = %s-%s, want 23:00-24:00", got.Start, got.End)
	}
	if got.Duration() != 60 {
		t.Errorf("duration = %d, want 60", got.Duration())
	}
}

func TestMoveInterval_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.MoveInterval(context.Background(), 999, time.Now(), "09:00")
	if !errors.Is(err, interval.ErrIntervalNotFound) {
		t.Errorf("err = %v, want ErrIntervalNotFound", err)
	}
}

func TestSetStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := testInterval("Track me", "09:00", "10:00")
	if err := repo.CreateInterval(ctx, iv); err != nil {
		t.Fatalf("CreateInterval failed: %v", err)
	}

	if err := repo.SetStatus(ctx, iv.ID, interval.StatusDone); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, _ := repo.GetInterval(ctx, iv.ID)
	if got.Status != interval.StatusDone {
		t.Errorf("status = %q, want done", got.Status)
	}

	if err := repo.SetStatus(ctx, 999, interval.StatusDone); !errors.Is(err, interval.ErrIntervalNotFound) {
		t.Errorf("missing id err = %v, want ErrIntervalNotFound", err)
	}
	if err := repo.SetStatus(ctx, iv.ID, "archived"); !errors.Is(err, interval.ErrInvalidStatus) {
		t.Errorf("bad status err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := testInterval("Draft", "09:00", "10:00")
	if err := repo.CreateInterval(ctx, iv); err != nil {
		t.Fatalf("CreateInterval failed: %v", err)
	}

	iv.Title = "Final"
	iv.Start = "09:30"
	iv.End = "10:30"
	iv.ColorTag = "mauve"
	iv.Tags = []string{"review"}
	iv.Notes = "updated"

	if err := repo.UpdateInterval(ctx, iv); err != nil {
		t.Fatalf("UpdateInterval failed: %v", err)
	}

	got, _ := repo.GetInterval(ctx, iv.ID)
	if got.Title != "Final" || got.Start != "09:30" || got.End != "10:30" {
		t.Errorf("got %+v", got)
	}
	if got.ColorTag != "mauve" || got.Notes != "updated" {
		t.Errorf("got colorTag=%q notes=%q", got.ColorTag, got.Notes)
	}

	missing := testInterval("Ghost", "09:00", "10:00")
	missing.ID = 999
	if err := repo.UpdateInterval(ctx, missing); !errors.Is(err, interval.ErrIntervalNotFound) {
		t.Errorf("missing id err = %v, want ErrIntervalNotFound", err)
	}
}

func TestDeleteInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := testInterval("Doomed", "09:00", "10:00")
	if err := repo.CreateInterval(ctx, iv); err != nil {
		t.Fatalf("CreateInterval failed: %v", err)
	}

	if err := repo.DeleteInterval(ctx, iv.ID); err != nil {
		t.Fatalf("DeleteInterval failed: %v", err)
	}

	got, err := repo.GetInterval(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterval failed: %v", err)
	}
	if got != nil {
		t.Errorf("interval still present after delete: %+v", got)
	}

	if err := repo.DeleteInterval(ctx, iv.ID); !errors.Is(err, interval.ErrIntervalNotFound) {
		t.Errorf("second delete err = %v, want ErrIntervalNotFound", err)
	}
}
