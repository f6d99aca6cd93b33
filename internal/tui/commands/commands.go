// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newbeginning12/flashcal/internal/config"
	"github.com/newbeginning12/flashcal/internal/grid"
	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/llm"
	"github.com/newbeginning12/flashcal/internal/planner"
)

// WeekLoadedMsg is sent when a week of intervals has been loaded.
type WeekLoadedMsg struct {
	WeekStart time.Time
	Intervals []*interval.Interval
}

// IntentAppliedMsg is sent after a repository mutation succeeded; the
// model reloads the week in response.
type IntentAppliedMsg struct {
	Desc string // short human description for the status line
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// PlanResultMsg is sent when LLM planning completes.
type PlanResultMsg struct {
	Result  *planner.PlanResult
	Planner *planner.Planner
}

// PlanSavedMsg is sent when a plan is saved successfully.
type PlanSavedMsg struct {
	Count int
}

// LoadWeek loads the intervals of one Monday-based week.
func LoadWeek(repo interval.Repository, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		start := interval.TruncateDay(weekStart)
		end := start.AddDate(0, 0, 6)

		ivs, err := repo.ListIntervalsByDateRange(ctx, start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading week: %w", err)}
		}
		return WeekLoadedMsg{WeekStart: start, Intervals: ivs}
	}
}

// ApplyMove reschedules an interval per a Move intent.
func ApplyMove(repo interval.Repository, it grid.MoveIntent) tea.Cmd {
	return func() tea.Msg {
		if err := repo.MoveInterval(context.Background(), it.ID, it.Day, it.Start); err != nil {
			return ErrMsg{Err: fmt.Errorf("moving interval: %w", err)}
		}
		return IntentAppliedMsg{Desc: fmt.Sprintf("Moved to %s %s", it.Day.Format("Mon"), it.Start)}
	}
}

// ApplyCreate inserts a new interval per a Create intent.
func ApplyCreate(repo interval.Repository, it grid.CreateIntent) tea.Cmd {
	return func() tea.Msg {
		endMin := interval.TimeToMinutes(it.Start) + it.Duration
		end := interval.MinutesToTime(endMin)
		if endMin >= interval.MinutesPerDay {
			end = "24:00"
		}
		title := it.Title
		if title == "" {
			title = "Untitled"
		}
		iv, err := interval.New(title, it.Day, it.Start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating interval: %w", err)}
		}
		iv.ColorTag = it.Color
		iv.Tags = it.Tags
		if err := repo.CreateInterval(context.Background(), iv); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating interval: %w", err)}
		}
		return IntentAppliedMsg{Desc: fmt.Sprintf("Created %q at %s", title, it.Start)}
	}
}

// ApplyDelete removes an interval per a Delete intent.
func ApplyDelete(repo interval.Repository, it grid.DeleteIntent) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteInterval(context.Background(), it.ID); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting interval: %w", err)}
		}
		return IntentAppliedMsg{Desc: "Deleted"}
	}
}

// ApplyStatus changes an interval's status per a SetStatus intent.
func ApplyStatus(repo interval.Repository, it grid.SetStatusIntent) tea.Cmd {
	return func() tea.Msg {
		if err := repo.SetStatus(context.Background(), it.ID, it.Status); err != nil {
			return ErrMsg{Err: fmt.Errorf("setting status: %w", err)}
		}
		return IntentAppliedMsg{Desc: fmt.Sprintf("Status: %s", it.Status)}
	}
}

// Plan runs the LLM planner on natural language input.
func Plan(input string, cfg *config.Config, repo interval.Repository) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		p := planner.New(client, cfg, repo)
		result, err := p.PlanWithRetry(context.Background(), planner.PlanRequest{Input: input}, 3)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("planning: %w", err)}
		}

		return PlanResultMsg{Result: result, Planner: p}
	}
}

// SavePlan persists the current planning result.
func SavePlan(p *planner.Planner, result *planner.PlanResult) tea.Cmd {
	return func() tea.Msg {
		if p == nil || result == nil {
			return ErrMsg{Err: fmt.Errorf("no plan to save")}
		}
		if err := p.Save(context.Background(), result); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving plan: %w", err)}
		}
		return PlanSavedMsg{Count: len(result.Intervals)}
	}
}
