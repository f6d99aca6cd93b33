package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/newbeginning12/flashcal/internal/interval"
)

const systemPromptFull = `You are a calendar assistant. You turn natural language requests
into concrete calendar intervals.

Context:
- Current date and time: %s, %s %s (format: DayOfWeek, YYYY-MM-DD HH:MM)
- Tomorrow: %s (%s)
- Preferred day hours: %s to %s

%s

User request: "%s"

Date parsing:
- "today" -> %s
- "tomorrow" -> %s
- "monday", "next monday" -> next occurrence of Monday
- "in X days" -> add X days to today
- Explicit "YYYY-MM-DD" -> use that exact date

Rules:
1. Resolve ALL dates to YYYY-MM-DD format in the day field
2. Use 24-hour time format (HH:MM) for start and end
3. Round times to 15-minute increments (minimum 15 minutes per interval)
4. Never schedule before the current time (%s) when scheduling for today
5. Prefer the configured day hours unless the user asks otherwise
6. Intervals MAY overlap existing ones; the calendar displays them side by side,
   but warn when you create an overlap
7. Pick a short color name for the color field (e.g. "teal", "mauve", "peach")
8. Derive tags from the request when obvious (e.g. "work", "gym"), else leave empty

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "intervals": [
    {
      "title": "string",
      "day": "YYYY-MM-DD",
      "start": "HH:MM",
      "end": "HH:MM",
      "color": "string",
      "tags": ["string"]
    }
  ],
  "warnings": ["string"],
  "suggestions": ["string"]
}`

const systemPromptCompact = `You are a calendar assistant. Use the context and return JSON only.

Today: %s (%s)
Tomorrow: %s (%s)
Current time: %s
Day hours: %s to %s

%s

User request: "%s"

Rules:
- Return JSON only (no markdown).
- Use day YYYY-MM-DD and times HH:MM (24-hour).
- Round to 15-minute increments (minimum 15 minutes).
- Do not schedule before the current time when scheduling today.
- Overlaps are allowed but should be mentioned in "warnings".
- "warnings" and "suggestions" must be arrays of strings.

JSON schema:
{
  "intervals": [
    {"title": "string", "day": "YYYY-MM-DD", "start": "HH:MM", "end": "HH:MM", "color": "string", "tags": ["string"]}
  ],
  "warnings": ["string"],
  "suggestions": ["string"]
}`

// ExistingInterval describes an interval already on the calendar, for LLM
// context.
type ExistingInterval struct {
	Day   string // YYYY-MM-DD
	Start string // HH:MM
	End   string // HH:MM
	Title string
}

// PlanRequest contains the input for the planner.
type PlanRequest struct {
	Input            string
	Date             time.Time
	DayStart         string // "HH:MM"
	DayEnd           string // "HH:MM"
	Existing         []ExistingInterval
	UseCompactPrompt bool // Use a shorter prompt for local models
}

// PlanResponse contains the parsed LLM response.
type PlanResponse struct {
	Intervals   []PlannedInterval `json:"intervals"`
	Warnings    []string          `json:"warnings"`
	Suggestions []string          `json:"suggestions"`
}

// PlannedInterval represents an interval planned by the LLM.
type PlannedInterval struct {
	Title string   `json:"title"`
	Day   string   `json:"day"` // YYYY-MM-DD format
	Start string   `json:"start"`
	End   string   `json:"end"`
	Color string   `json:"color"`
	Tags  []string `json:"tags"`
}

// Planner uses an LLM to plan intervals from natural language input.
type Planner struct {
	client Client
}

// NewPlanner creates a new Planner with the given LLM client.
func NewPlanner(client Client) *Planner {
	return &Planner{client: client}
}

// Plan converts natural language input into planned intervals.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	return p.PlanWithMessages(ctx, p.BuildInitialMessages(req))
}

// PlanWithMessages allows planning with a pre-built message history.
// Used for retry logic where error feedback is appended.
func (p *Planner) PlanWithMessages(ctx context.Context, messages []Message) (*PlanResponse, error) {
	var resp PlanResponse
	if err := p.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("getting plan from LLM: %w", err)
	}
	return &resp, nil
}

// BuildInitialMessages creates the initial message list for a planning
// request. Exported so the planner package can extend the history for
// retries.
func (p *Planner) BuildInitialMessages(req PlanRequest) []Message {
	dayOfWeek := req.Date.Format("Monday")
	currentDate := req.Date.Format("2006-01-02")
	currentTime := req.Date.Format("15:04")
	tomorrow := req.Date.AddDate(0, 0, 1)
	tomorrowDate := tomorrow.Format("2006-01-02")
	tomorrowDay := tomorrow.Format("Monday")

	dayStart := req.DayStart
	if dayStart == "" {
		dayStart = "08:00"
	}
	dayEnd := req.DayEnd
	if dayEnd == "" {
		dayEnd = "18:00"
	}

	existingSection := formatExisting(req.Existing)

	var prompt string
	if req.UseCompactPrompt {
		prompt = fmt.Sprintf(systemPromptCompact,
			dayOfWeek,
			currentDate,
			tomorrowDay,
			tomorrowDate,
			currentTime,
			dayStart,
			dayEnd,
			existingSection,
			req.Input,
		)
	} else {
		prompt = fmt.Sprintf(systemPromptFull,
			dayOfWeek,
			currentDate,
			currentTime,
			tomorrowDay,
			tomorrowDate,
			dayStart,
			dayEnd,
			existingSection,
			req.Input,
			currentDate,  // "today" means this
			tomorrowDate, // "tomorrow" means this
			currentTime,  // don't schedule before
		)
	}

	return []Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: req.Input},
	}
}

func formatExisting(ivs []ExistingInterval) string {
	if len(ivs) == 0 {
		return "Existing calendar intervals: None"
	}

	sorted := append([]ExistingInterval(nil), ivs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Title < sorted[j].Title
	})

	var sb strings.Builder
	sb.WriteString("Existing calendar intervals:\n")
	for _, iv := range sorted {
		sb.WriteString(fmt.Sprintf("- %s %s-%s: %s\n", iv.Day, iv.Start, iv.End, iv.Title))
	}
	return sb.String()
}

// ToIntervals converts planned intervals to domain objects, validating
// each one.
func (pr *PlanResponse) ToIntervals() ([]*interval.Interval, error) {
	out := make([]*interval.Interval, 0, len(pr.Intervals))

	for _, pi := range pr.Intervals {
		day, err := time.Parse("2006-01-02", pi.Day)
		if err != nil {
			return nil, fmt.Errorf("parsing day %q: %w", pi.Day, err)
		}

		iv, err := interval.New(pi.Title, day, pi.Start, pi.End)
		if err != nil {
			return nil, fmt.Errorf("interval %q: %w", pi.Title, err)
		}
		iv.ColorTag = pi.Color
		iv.Tags = pi.Tags

		out = append(out, iv)
	}

	return out, nil
}
