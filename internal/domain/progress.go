package domain

import (
	"regexp"
	"strconv"
)

var firstIntPattern = regexp.MustCompile(`\d+`)

// Progress is the period-scoped reduction of a habit's reports. It is
// derived state: recomputed from the report set on every read and never
// persisted.
type Progress struct {
	Value        float64 `json:"progress"`
	Completed    bool    `json:"completed"`
	LastReported string  `json:"lastReportedValue,omitempty"`
}

// Summarize reduces a habit's in-period reports to a progress value and
// completion status. It is a pure function of the habit type, goal string,
// and report set. For number and duration habits progress is the sum of
// report values; for boolean, time, and options habits each report counts as
// one unit regardless of payload.
func Summarize(t HabitType, goal string, reports []HabitReport) Progress {
	var p Progress
	if t.Countable() {
		p.Value = float64(len(reports))
	} else {
		for _, r := range reports {
			p.Value += r.Value.Numeric()
		}
	}

	// Reports arrive ordered by ReportedAt ascending, but don't rely on it.
	var last *HabitReport
	for i := range reports {
		if last == nil || !reports[i].ReportedAt.Before(last.ReportedAt) {
			last = &reports[i]
		}
	}
	if last != nil {
		p.LastReported = last.Value.Display()
	}

	p.Completed = p.Value >= float64(GoalTarget(t, goal))
	return p
}

// GoalTarget extracts the numeric target a habit's progress is compared
// against. Boolean, time, and options habits complete on a single report
// regardless of the goal text. For number and duration habits the target is
// the first integer substring of the goal ("8 glasses" -> 8), defaulting to
// 1 when the goal contains no digits. Multi-number goals use only the first
// number.
func GoalTarget(t HabitType, goal string) int {
	if t.Countable() {
		return 1
	}
	if m := firstIntPattern.FindString(goal); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 1
}
