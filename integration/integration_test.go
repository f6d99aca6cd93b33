package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/newbeginning12/flashcal/internal/db"
	"github.com/newbeginning12/flashcal/internal/grid"
	"github.com/newbeginning12/flashcal/internal/interval"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// createInterval creates and inserts an interval.
func createInterval(t *testing.T, repo *db.SQLite, title string, day time.Time, start, end string) *interval.Interval {
	t.Helper()
	iv, err := interval.New(title, day, start, end)
	if err != nil {
		t.Fatalf("failed to build interval: %v", err)
	}
	if err := repo.CreateInterval(context.Background(), iv); err != nil {
		t.Fatalf("failed to insert interval: %v", err)
	}
	return iv
}

// newEngine builds an engine loaded with the given week from the repo,
// mirroring the host's viewport setup.
func newEngine(t *testing.T, repo *db.SQLite, monday time.Time) *grid.Engine {
	t.Helper()
	eng := grid.New(grid.Config{
		WeekStart:        monday,
		MinRowHeight:     1,
		MaxRowHeight:     16,
		DefaultRowHeight: 4,
		TimeGutter:       6,
		DragThreshold:    0.5,
	})
	eng.SetViewport(76, 24)
	reloadWeek(t, repo, eng, monday)
	return eng
}

func reloadWeek(t *testing.T, repo *db.SQLite, eng *grid.Engine, monday time.Time) {
	t.Helper()
	ivs, err := repo.ListIntervalsByDateRange(context.Background(), monday, monday.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("failed to list week: %v", err)
	}
	eng.SetIntervals(ivs)
}

// applyIntents plays the host's role: drain the engine queue, persist each
// mutation, then re-supply the week.
func applyIntents(t *testing.T, repo *db.SQLite, eng *grid.Engine, monday time.Time) {
	t.Helper()
	ctx := context.Background()
	for _, it := range eng.Intents() {
		switch it := it.(type) {
		case grid.MoveIntent:
			if err := repo.MoveInterval(ctx, it.ID, it.Day, it.Start); err != nil {
				t.Fatalf("move failed: %v", err)
			}
		case grid.CreateIntent:
			end := interval.MinutesToTime(interval.TimeToMinutes(it.Start) + it.Duration)
			iv, err := interval.New(it.Title, it.Day, it.Start, end)
			if err != nil {
				t.Fatalf("building interval from create intent: %v", err)
			}
			iv.ColorTag = it.Color
			iv.Tags = it.Tags
			if err := repo.CreateInterval(ctx, iv); err != nil {
				t.Fatalf("create failed: %v", err)
			}
		case grid.DeleteIntent:
			if err := repo.DeleteInterval(ctx, it.ID); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
		case grid.SetStatusIntent:
			if err := repo.SetStatus(ctx, it.ID, it.Status); err != nil {
				t.Fatalf("set status failed: %v", err)
			}
		}
	}
	reloadWeek(t, repo, eng, monday)
}

var monday = time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)

func TestDragMovePersists(t *testing.T) {
	repo := openRepo(t)
	iv := createInterval(t, repo, "Standup", monday.AddDate(0, 0, 1), "10:00", "10:30")
	eng := newEngine(t, repo, monday)

	// Tracks: gutter 6, track width 10. Tuesday spans x 16..26; 10:00 at
	// content row 40, scroll 0 keeps it on screen after scrolling there.
	eng.ScrollToTime(8 * 60)
	if !eng.PointerDown(18, 40-eng.Scroll()) {
		t.Fatal("pointer down missed the interval")
	}
	// Drop on Thursday at 13:00 (content row 52).
	eng.PointerMove(38, 52-eng.Scroll())
	eng.PointerUp(38, 52-eng.Scroll())

	applyIntents(t, repo, eng, monday)

	got, err := repo.GetInterval(context.Background(), iv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !interval.TruncateDay(got.Day).Equal(monday.AddDate(0, 0, 3)) {
		t.Errorf("day = %v, want Thursday", got.Day)
	}
	if got.Start != "13:00" || got.End != "13:30" {
		t.Errorf("times = %s-%s, want 13:00-13:30", got.Start, got.End)
	}

	// The moved interval lays out on its new day after reload.
	if eng.Layout(1) != nil {
		t.Error("Tuesday should be empty after the move")
	}
	if len(eng.Layout(3)) != 1 {
		t.Errorf("Thursday has %d intervals, want 1", len(eng.Layout(3)))
	}
}

func TestTemplateDropCreates(t *testing.T) {
	repo := openRepo(t)
	eng := newEngine(t, repo, monday)
	eng.ScrollToTime(8 * 60)

	p := grid.Payload{Kind: grid.PayloadTemplate, Title: "Focus", DurationMinutes: 60, Color: "blue"}
	if !eng.EnterExternal(18, 40-eng.Scroll(), p.EncodeJSON(), p.EncodeText()) {
		t.Fatal("external drag rejected")
	}
	eng.PointerUp(18, 40-eng.Scroll())

	applyIntents(t, repo, eng, monday)

	ivs, err := repo.ListIntervalsByDateRange(context.Background(), monday, monday.AddDate(0, 0, 6))
	if err != nil {
		t.Fatal(err)
	}
	if len(ivs) != 1 {
		t.Fatalf("got %d intervals, want 1", len(ivs))
	}
	if ivs[0].Title != "Focus" || ivs[0].Start != "10:00" || ivs[0].End != "11:00" {
		t.Errorf("created %s %s-%s", ivs[0].Title, ivs[0].Start, ivs[0].End)
	}
	if ivs[0].ColorTag != "blue" {
		t.Errorf("color = %q, want blue", ivs[0].ColorTag)
	}
}

func TestStatusAndDeleteRoundTrip(t *testing.T) {
	repo := openRepo(t)
	iv := createInterval(t, repo, "Review", monday, "09:00", "10:00")
	eng := newEngine(t, repo, monday)
	ctx := context.Background()

	eng.RequestStatus(iv.ID, interval.StatusDone)
	applyIntents(t, repo, eng, monday)

	got, err := repo.GetInterval(ctx, iv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != interval.StatusDone {
		t.Errorf("status = %v, want done", got.Status)
	}

	eng.RequestDelete(iv.ID)
	applyIntents(t, repo, eng, monday)

	got, err = repo.GetInterval(ctx, iv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("interval still present after delete")
	}
	if eng.Layout(0) != nil {
		t.Error("Monday layout not empty after delete")
	}
}

func TestOverlapsSurviveStorageAndLayout(t *testing.T) {
	repo := openRepo(t)
	createInterval(t, repo, "A", monday, "09:00", "11:00")
	createInterval(t, repo, "B", monday, "10:00", "12:00")
	eng := newEngine(t, repo, monday)

	// Overlapping intervals are legal; layout splits them into columns.
	pos := eng.Layout(0)
	if len(pos) != 2 {
		t.Fatalf("got %d positioned intervals, want 2", len(pos))
	}
	if pos[0].Column == pos[1].Column {
		t.Error("overlapping intervals share a column")
	}
}

func TestWeekBatchCreate(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	var batch []*interval.Interval
	for day := 0; day < 3; day++ {
		iv, err := interval.New("Block", monday.AddDate(0, 0, day), "09:00", "10:00")
		if err != nil {
			t.Fatal(err)
		}
		batch = append(batch, iv)
	}
	if err := repo.CreateIntervals(ctx, batch); err != nil {
		t.Fatalf("batch create failed: %v", err)
	}
	for _, iv := range batch {
		if iv.ID == 0 {
			t.Error("batch insert left an interval without ID")
		}
	}

	ivs, err := repo.ListIntervalsByDateRange(ctx, monday, monday.AddDate(0, 0, 6))
	if err != nil {
		t.Fatal(err)
	}
	if len(ivs) != 3 {
		t.Errorf("listed %d intervals, want 3", len(ivs))
	}
}
