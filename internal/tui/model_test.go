package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newbeginning12/flashcal/internal/config"
	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/tui/commands"
)

// fakeRepo is an in-memory interval.Repository recording mutations.
type fakeRepo struct {
	intervals []*interval.Interval
	moved     []int64
	created   []*interval.Interval
	deleted   []int64
	statuses  map[int64]interval.Status
}

func newFakeRepo(ivs ...*interval.Interval) *fakeRepo {
	return &fakeRepo{intervals: ivs, statuses: make(map[int64]interval.Status)}
}

func (f *fakeRepo) CreateInterval(ctx context.Context, iv *interval.Interval) error {
	f.created = append(f.created, iv)
	return nil
}

func (f *fakeRepo) CreateIntervals(ctx context.Context, ivs []*interval.Interval) error {
	f.created = append(f.created, ivs...)
	return nil
}

func (f *fakeRepo) GetInterval(ctx context.Context, id int64) (*interval.Interval, error) {
	for _, iv := range f.intervals {
		if iv.ID == id {
			return iv, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListIntervalsByDateRange(ctx context.Context, start, end time.Time) ([]*interval.Interval, error) {
	return f.intervals, nil
}

func (f *fakeRepo) MoveInterval(ctx context.Context, id int64, newDay time.Time, newStart string) error {
	f.moved = append(f.moved, id)
	return nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, id int64, status interval.Status) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeRepo) UpdateInterval(ctx context.Context, iv *interval.Interval) error { return nil }
func (f *fakeRepo) DeleteInterval(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeRepo) Close() error { return nil }

// testModel builds a model sized so one terminal cell maps cleanly:
// width 76 gives 10-cell day tracks after the 6-cell gutter; height 30
// gives a 24-line grid viewport. Day start 08:00 with the default row
// height of 4 lines/hour puts the initial scroll at line 32.
func testModel(t *testing.T, repo interval.Repository) Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := config.Default()
	m := New(repo, cfg)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 76, Height: 30})
	model := updated.(Model)

	msg := commands.LoadWeek(repo, model.engine.WeekStart())()
	updated, _ = model.Update(msg)
	return updated.(Model)
}

// onDay builds an interval on the visible week at the given day offset.
func onDay(t *testing.T, m Model, id int64, offset int, start, end, title string) *interval.Interval {
	t.Helper()
	iv, err := interval.New(title, m.engine.DayDate(offset), start, end)
	if err != nil {
		t.Fatal(err)
	}
	iv.ID = id
	return iv
}

func mouse(x, y int, button tea.MouseButton, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: button, Action: action}
}

func TestClickOpensDetailModal(t *testing.T) {
	repo := newFakeRepo()
	m := testModel(t, repo)

	iv := onDay(t, m, 7, 1, "10:00", "11:00", "Standup")
	m.engine.SetIntervals([]*interval.Interval{iv})

	// 10:00 is content line 40; scroll 32 puts it at grid line 8,
	// terminal row 11. Day 1 spans columns [16, 26).
	updated, _ := m.Update(mouse(18, 11, tea.MouseButtonLeft, tea.MouseActionPress))
	m = updated.(Model)
	updated, _ = m.Update(mouse(18, 11, tea.MouseButtonLeft, tea.MouseActionRelease))
	m = updated.(Model)

	if m.mode != ModeModal || m.modalType != ModalDetail {
		t.Fatalf("mode = %v modal = %v, want detail modal", m.mode, m.modalType)
	}
	if m.detail == nil || m.detail.ID != 7 {
		t.Errorf("detail = %+v", m.detail)
	}
	if m.selected != 7 {
		t.Errorf("selected = %d, want 7", m.selected)
	}
}

func TestDragMovesInterval(t *testing.T) {
	repo := newFakeRepo()
	m := testModel(t, repo)

	iv := onDay(t, m, 7, 1, "10:00", "11:00", "Standup")
	m.engine.SetIntervals([]*interval.Interval{iv})

	updated, _ := m.Update(mouse(18, 11, tea.MouseButtonLeft, tea.MouseActionPress))
	m = updated.(Model)
	updated, _ = m.Update(mouse(38, 15, tea.MouseButtonLeft, tea.MouseActionMotion))
	m = updated.(Model)

	// Row 15 is content line 44: the preview tracks 11:00 on day 3.
	p, ok := m.engine.DragPreview()
	if !ok {
		t.Fatal("no drag preview while dragging")
	}
	if p.Day != 3 || p.Start != 11*60 {
		t.Errorf("preview = %+v, want day 3 11:00", p)
	}

	updated, cmd := m.Update(mouse(38, 15, tea.MouseButtonLeft, tea.MouseActionRelease))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("release did not produce a command")
	}

	if _, ok := cmd().(commands.IntentAppliedMsg); !ok {
		t.Fatal("expected IntentAppliedMsg after applying the move")
	}
	if len(repo.moved) != 1 || repo.moved[0] != 7 {
		t.Errorf("moved = %v, want [7]", repo.moved)
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %v after drag, want normal", m.mode)
	}
}

func TestTemplateTrayDragCreates(t *testing.T) {
	repo := newFakeRepo()
	m := testModel(t, repo)

	// Press the first tray item (row 2), drag into the grid, release.
	updated, _ := m.Update(mouse(8, 2, tea.MouseButtonLeft, tea.MouseActionPress))
	m = updated.(Model)
	if m.trayPressed != 0 {
		t.Fatalf("trayPressed = %d, want 0", m.trayPressed)
	}

	updated, _ = m.Update(mouse(18, 11, tea.MouseButtonLeft, tea.MouseActionMotion))
	m = updated.(Model)
	if m.trayPressed != -1 {
		t.Error("tray press not handed off to the engine")
	}

	updated, cmd := m.Update(mouse(18, 11, tea.MouseButtonLeft, tea.MouseActionRelease))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("release did not produce a command")
	}
	cmd()

	if len(repo.created) != 1 {
		t.Fatalf("created %d intervals, want 1", len(repo.created))
	}
	created := repo.created[0]
	if created.Title != "Focus" || created.Start != "10:00" || created.End != "11:00" {
		t.Errorf("created = %+v", created)
	}
	if !created.Day.Equal(m.engine.DayDate(1)) {
		t.Errorf("created day = %v, want day 1", created.Day)
	}
}

func TestCtrlWheelZoomPersists(t *testing.T) {
	repo := newFakeRepo()
	m := testModel(t, repo)

	before := m.engine.RowHeight()
	msg := tea.MouseMsg{X: 18, Y: 11, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress, Ctrl: true}
	updated, _ := m.Update(msg)
	m = updated.(Model)

	if got := m.engine.RowHeight(); got != before*1.25 {
		t.Errorf("row height = %v, want %v", got, before*1.25)
	}
	if m.config.Zoom.RowHeight != m.engine.RowHeight() {
		t.Errorf("config row height %v not synced with engine %v",
			m.config.Zoom.RowHeight, m.engine.RowHeight())
	}
}

func TestWeekNavigation(t *testing.T) {
	repo := newFakeRepo()
	m := testModel(t, repo)
	start := m.engine.WeekStart()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("week shift did not schedule a reload")
	}
	if want := start.AddDate(0, 0, 7); !m.engine.WeekStart().Equal(want) {
		t.Errorf("week start = %v, want %v", m.engine.WeekStart(), want)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = updated.(Model)
	if !m.engine.WeekStart().Equal(start) {
		t.Errorf("week start = %v, want %v", m.engine.WeekStart(), start)
	}
}

func TestStatusCycleAndDelete(t *testing.T) {
	repo := newFakeRepo()
	m := testModel(t, repo)

	iv := onDay(t, m, 7, 1, "10:00", "11:00", "Standup")
	m.engine.SetIntervals([]*interval.Interval{iv})
	m.selected = 7

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("status cycle did not produce a command")
	}
	cmd()
	if repo.statuses[7] != interval.StatusActive {
		t.Errorf("status = %v, want active", repo.statuses[7])
	}

	// Delete goes through the confirmation modal.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updated.(Model)
	if m.modalType != ModalConfirmDelete {
		t.Fatalf("modal = %v, want confirm delete", m.modalType)
	}
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("confirm did not produce a command")
	}
	cmd()
	if len(repo.deleted) != 1 || repo.deleted[0] != 7 {
		t.Errorf("deleted = %v, want [7]", repo.deleted)
	}
	if m.modalType != ModalNone {
		t.Errorf("modal = %v after delete, want none", m.modalType)
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	repo := newFakeRepo()
	m := testModel(t, repo)

	iv := onDay(t, m, 7, 1, "10:00", "11:00", "Standup")
	m.engine.SetIntervals([]*interval.Interval{iv})

	updated, _ := m.Update(mouse(18, 11, tea.MouseButtonLeft, tea.MouseActionPress))
	m = updated.(Model)
	updated, _ = m.Update(mouse(38, 15, tea.MouseButtonLeft, tea.MouseActionMotion))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if _, ok := m.engine.DragPreview(); ok {
		t.Error("preview survived escape")
	}
	updated, cmd := m.Update(mouse(38, 15, tea.MouseButtonLeft, tea.MouseActionRelease))
	_ = updated
	if cmd != nil {
		if _, ok := cmd().(commands.IntentAppliedMsg); ok {
			t.Error("cancelled drag still committed")
		}
	}
	if len(repo.moved) != 0 {
		t.Errorf("moved = %v after cancel", repo.moved)
	}
}

func TestToEngineBounds(t *testing.T) {
	m := testModel(t, newFakeRepo())

	if _, _, ok := m.toEngine(10, 1); ok {
		t.Error("header row mapped into the grid")
	}
	if _, _, ok := m.toEngine(10, 29); ok {
		t.Error("footer row mapped into the grid")
	}
	gx, gy, ok := m.toEngine(10, gridTop)
	if !ok || gx != 10 || gy != 0 {
		t.Errorf("toEngine(10, gridTop) = %v,%v,%v", gx, gy, ok)
	}
}

func TestTrayHit(t *testing.T) {
	zones := trayZones(defaultTemplates)
	if len(zones) != len(defaultTemplates) {
		t.Fatalf("zones = %d", len(zones))
	}
	if zones[0].start != timeGutterWidth {
		t.Errorf("first zone starts at %d", zones[0].start)
	}

	if got := trayHit(defaultTemplates, zones[1].start); got != 1 {
		t.Errorf("trayHit at second zone = %d", got)
	}
	if got := trayHit(defaultTemplates, zones[0].end); got != -1 {
		t.Errorf("gap between zones hit = %d", got)
	}
	if got := trayHit(defaultTemplates, 0); got != -1 {
		t.Errorf("gutter hit = %d", got)
	}
}
