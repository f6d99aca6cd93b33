package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newbeginning12/flashcal/internal/config"
	"github.com/newbeginning12/flashcal/internal/interval"
	"github.com/newbeginning12/flashcal/internal/llm"
)

// ErrMaxRetriesExceeded is returned when all retry attempts fail validation.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded, validation still failing")

// Planner orchestrates interval planning using the LLM and the repository.
type Planner struct {
	client llm.Client
	repo   interval.Repository
	config *config.Config

	// Now is injectable for tests.
	Now func() time.Time

	// Conversation state for interactive planning
	messages     []llm.Message
	existing     []*interval.Interval
	lastResponse *llm.PlanResponse
}

// New creates a new Planner with the given dependencies.
func New(client llm.Client, cfg *config.Config, repo interval.Repository) *Planner {
	return &Planner{
		client: client,
		repo:   repo,
		config: cfg,
		Now:    time.Now,
	}
}

func useCompactPrompt(provider string) bool {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case llm.ProviderOllama, llm.ProviderLMStudio, "lm-studio", "llmstudio":
		return true
	default:
		return false
	}
}

// PlanRequest contains the input for planning.
type PlanRequest struct {
	Input string // Natural language description of intervals
}

// PlanResult contains the result of a planning operation.
type PlanResult struct {
	Intervals   []*interval.Interval
	Warnings    []string
	Suggestions []string

	// Validation info (populated if retries exhausted)
	ValidationErrors []ValidationError
}

// HasValidationErrors returns true if there are unresolved validation errors.
func (r *PlanResult) HasValidationErrors() bool {
	return len(r.ValidationErrors) > 0
}

// PlanWithRetry creates intervals from natural language input with
// validation and retry. It fetches existing intervals for context, calls
// the LLM, validates the response, and feeds errors back on failure. If
// maxRetries are exhausted, the result carries ValidationErrors.
func (p *Planner) PlanWithRetry(ctx context.Context, req PlanRequest, maxRetries int) (*PlanResult, error) {
	now := p.Now()

	existing, err := p.fetchExisting(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("fetching existing intervals: %w", err)
	}
	p.existing = existing

	llmPlanner := llm.NewPlanner(p.client)
	p.messages = llmPlanner.BuildInitialMessages(llm.PlanRequest{
		Input:            req.Input,
		Date:             now,
		DayStart:         p.config.Schedule.DayStart,
		DayEnd:           p.config.Schedule.DayEnd,
		Existing:         toExisting(existing),
		UseCompactPrompt: useCompactPrompt(p.config.LLM.Provider),
	})

	return p.loop(ctx, now, maxRetries)
}

// ContinuePlanning adds context to the conversation and replans.
// Used when the user wants to modify the proposal.
func (p *Planner) ContinuePlanning(ctx context.Context, additionalContext string, maxRetries int) (*PlanResult, error) {
	if len(p.messages) == 0 {
		return nil, errors.New("no active planning session")
	}

	if p.lastResponse != nil {
		respJSON, _ := json.Marshal(p.lastResponse)
		p.messages = append(p.messages, llm.Message{Role: "assistant", Content: string(respJSON)})
	}
	p.messages = append(p.messages, llm.Message{Role: "user", Content: additionalContext})

	return p.loop(ctx, p.Now(), maxRetries)
}

func (p *Planner) loop(ctx context.Context, now time.Time, maxRetries int) (*PlanResult, error) {
	llmPlanner := llm.NewPlanner(p.client)

	var lastValidation ValidationResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := llmPlanner.PlanWithMessages(ctx, p.messages)
		if err != nil {
			return nil, fmt.Errorf("LLM planning (attempt %d): %w", attempt+1, err)
		}
		p.lastResponse = resp

		validator := NewValidator(now, p.existing)
		lastValidation = validator.Validate(resp.Intervals)

		if lastValidation.Valid {
			return buildResult(resp, lastValidation, nil)
		}

		if attempt < maxRetries {
			respJSON, _ := json.Marshal(resp)
			p.messages = append(p.messages, llm.Message{Role: "assistant", Content: string(respJSON)})
			p.messages = append(p.messages, llm.Message{Role: "user", Content: lastValidation.FormatErrors()})
		}
	}

	// All retries exhausted; surface the errors to the caller.
	return buildResult(p.lastResponse, lastValidation, lastValidation.Errors)
}

// Save persists the planned intervals to the repository.
func (p *Planner) Save(ctx context.Context, result *PlanResult) error {
	if result.HasValidationErrors() {
		return errors.New("cannot save: result has validation errors")
	}
	if len(result.Intervals) == 0 {
		return nil
	}
	return p.repo.CreateIntervals(ctx, result.Intervals)
}

// fetchExisting retrieves intervals from today through one month ahead.
func (p *Planner) fetchExisting(ctx context.Context, from time.Time) ([]*interval.Interval, error) {
	start := interval.TruncateDay(from)
	return p.repo.ListIntervalsByDateRange(ctx, start, start.AddDate(0, 1, 0))
}

func toExisting(ivs []*interval.Interval) []llm.ExistingInterval {
	out := make([]llm.ExistingInterval, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, llm.ExistingInterval{
			Day:   iv.Day.Format("2006-01-02"),
			Start: iv.Start,
			End:   iv.End,
			Title: iv.Title,
		})
	}
	return out
}

func buildResult(resp *llm.PlanResponse, validation ValidationResult, validationErrors []ValidationError) (*PlanResult, error) {
	result := &PlanResult{
		Warnings:         append(resp.Warnings, validation.Warnings...),
		Suggestions:      resp.Suggestions,
		ValidationErrors: validationErrors,
	}

	if len(validationErrors) > 0 {
		return result, nil
	}

	ivs, err := resp.ToIntervals()
	if err != nil {
		return nil, fmt.Errorf("converting plan: %w", err)
	}
	result.Intervals = ivs
	return result, nil
}
