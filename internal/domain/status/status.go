// Package status normalizes upstream game status values at the system
// boundary. Upstream feeds have shipped several shapes over time: a bare
// string, an object with a nested type, numeric type codes, string state
// names. Everything collapses here into a single {State, Detail} pair so no
// downstream component ever branches on the raw shape again.
package status

import (
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// Normalized is the closed output of the normalizer.
type Normalized struct {
	State model.GameState
	// Detail keeps the upstream free-text status line (e.g. "Final/OT"),
	// used later for overtime and shootout detection.
	Detail string
}

// Upstream numeric type codes, the primary signal when present.
const (
	codeScheduled  = 1
	codeInProgress = 2
	codeFinal      = 3
)

// Normalize maps an arbitrary upstream status representation to a Normalized
// value. Unrecognized input maps to StateUnknown rather than erroring; unknown
// games are simply not scoreable.
func Normalize(raw any) Normalized {
	switch v := raw.(type) {
	case nil:
		return Normalized{State: model.StateUnknown}
	case string:
		return Normalized{State: stateFromText(v), Detail: v}
	case float64:
		return Normalized{State: stateFromCode(int(v))}
	case int:
		return Normalized{State: stateFromCode(v)}
	case map[string]any:
		return normalizeObject(v)
	default:
		return Normalized{State: model.StateUnknown}
	}
}

// normalizeObject handles the structured historical shapes:
//
//	{"type": {"id": 3, "state": "post", "detail": "Final/OT"}}
//	{"id": "2", "name": "STATUS_IN_PROGRESS"}
//	{"state": "live", "short_detail": "OT"}
func normalizeObject(obj map[string]any) Normalized {
	n := Normalized{State: model.StateUnknown}

	// Flatten a nested "type" object into the search space.
	fields := obj
	if t, ok := obj["type"].(map[string]any); ok {
		merged := make(map[string]any, len(obj)+len(t))
		for k, v := range obj {
			merged[k] = v
		}
		for k, v := range t {
			merged[k] = v
		}
		fields = merged
	}

	n.Detail = firstString(fields, "detail", "short_detail", "shortDetail", "description")

	// Numeric type codes come first.
	if code, ok := typeCode(fields["id"]); ok {
		if st := stateFromCode(code); st != model.StateUnknown {
			n.State = st
			return n
		}
	}

	// Fall back to state/name strings.
	for _, key := range []string{"state", "name"} {
		if s, ok := fields[key].(string); ok {
			if st := stateFromText(s); st != model.StateUnknown {
				n.State = st
				return n
			}
		}
	}
	return n
}

// typeCode accepts numeric codes as JSON numbers or numeric strings.
func typeCode(v any) (int, bool) {
	switch c := v.(type) {
	case float64:
		return int(c), true
	case int:
		return c, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func stateFromCode(code int) model.GameState {
	switch code {
	case codeScheduled:
		return model.StateScheduled
	case codeInProgress:
		return model.StateInProgress
	case codeFinal:
		return model.StateFinal
	default:
		return model.StateUnknown
	}
}

// stateFromText matches exact tokens first, containment last.
func stateFromText(s string) model.GameState {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "pre", "scheduled":
		return model.StateScheduled
	case "in", "live", "in_progress":
		return model.StateInProgress
	case "post", "final":
		return model.StateFinal
	}
	switch {
	case strings.Contains(t, "final"), strings.Contains(t, "post"):
		return model.StateFinal
	case strings.Contains(t, "progress"), strings.Contains(t, "live"), strings.Contains(t, "halftime"):
		return model.StateInProgress
	case strings.Contains(t, "sched"), strings.Contains(t, "pre"):
		return model.StateScheduled
	default:
		return model.StateUnknown
	}
}

func firstString(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := fields[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
