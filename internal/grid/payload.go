package grid

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload kinds.
const (
	PayloadTemplate = "template"
	PayloadMove     = "move"
)

// Payload is the wire shape carried on cross-boundary drags (template
// tray -> grid, or an interval re-entering from another surface). It may
// arrive through more than one concurrent encoding; the structured JSON
// form is authoritative when both are present.
type Payload struct {
	Kind            string   `json:"kind"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Title           string   `json:"title,omitempty"`
	Color           string   `json:"color,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	IntervalID      int64    `json:"intervalId,omitempty"`
}

// Valid reports whether the payload names a known kind with usable data.
func (p Payload) Valid() bool {
	switch p.Kind {
	case PayloadTemplate:
		return p.DurationMinutes > 0
	case PayloadMove:
		return p.IntervalID != 0
	default:
		return false
	}
}

// EncodeJSON returns the structured form of the payload.
func (p Payload) EncodeJSON() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(data)
}

// EncodeText returns the plain-text fallback form:
// "kind;duration;title;color;tag1,tag2" for templates,
// "move;id" for moves.
func (p Payload) EncodeText() string {
	if p.Kind == PayloadMove {
		return PayloadMove + ";" + strconv.FormatInt(p.IntervalID, 10)
	}
	fields := []string{
		p.Kind,
		strconv.Itoa(p.DurationMinutes),
		p.Title,
		p.Color,
		strings.Join(p.Tags, ","),
	}
	return strings.Join(fields, ";")
}

// DecodePayload parses a drop payload that may carry a structured JSON
// form, a plain-text fallback form, or both. The structured form wins
// when both decode. Returns ok=false when neither form parses into a
// valid payload; the caller ignores such drops without emitting anything.
func DecodePayload(structured, plain string) (Payload, bool) {
	if structured != "" {
		var p Payload
		if err := json.Unmarshal([]byte(structured), &p); err == nil && p.Valid() {
			return p, true
		}
	}
	if plain != "" {
		if p, ok := decodeText(plain); ok && p.Valid() {
			return p, true
		}
	}
	return Payload{}, false
}

func decodeText(s string) (Payload, bool) {
	parts := strings.Split(strings.TrimSpace(s), ";")
	if len(parts) < 2 {
		return Payload{}, false
	}

	switch parts[0] {
	case PayloadMove:
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Payload{}, false
		}
		return Payload{Kind: PayloadMove, IntervalID: id}, true

	case PayloadTemplate:
		dur, err := strconv.Atoi(parts[1])
		if err != nil {
			return Payload{}, false
		}
		p := Payload{Kind: PayloadTemplate, DurationMinutes: dur}
		if len(parts) > 2 {
			p.Title = parts[2]
		}
		if len(parts) > 3 {
			p.Color = parts[3]
		}
		if len(parts) > 4 && parts[4] != "" {
			p.Tags = strings.Split(parts[4], ",")
		}
		return p, true

	default:
		return Payload{}, false
	}
}
