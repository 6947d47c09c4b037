package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick from the output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent formats an event according to the specified format.
// start anchors the relative timestamps of the text format.
func FormatEvent(ev *Event, format Format, start time.Time) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev, start)
}

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	SpanID    uint64            `json:"span_id"`
	ParentID  uint64            `json:"parent_id,omitempty"`
	Depth     int               `json:"depth"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	ElapsedMS float64           `json:"elapsed_ms,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// formatNDJSON formats an event as one JSON object per line.
func formatNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:      ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Depth:     ev.Depth,
		Name:      ev.Name,
		Detail:    ev.Detail,
		ElapsedMS: millis(ev.Elapsed),
	}
	if len(ev.Fields) > 0 {
		j.Fields = make(map[string]string, len(ev.Fields))
		for _, f := range ev.Fields {
			j.Fields[f.Key] = f.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// formatText formats an event as one indented line:
//
//	[   0.412ms]   ← parse (a.calc) {tokens=12} 0.087ms
func formatText(ev *Event, start time.Time) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%9.3fms] ", millis(ev.Time.Sub(start)))
	sb.WriteString(strings.Repeat("  ", ev.Depth))

	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	case KindPoint:
		sb.WriteString("• ")
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if len(ev.Fields) > 0 {
		sb.WriteString(" {")
		for i, f := range ev.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Key + "=" + f.Value)
		}
		sb.WriteString("}")
	}
	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " %.3fms", millis(ev.Elapsed))
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
