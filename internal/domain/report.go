package domain

import (
	"context"
	"math"
	"strconv"
	"time"
)

// HabitReport is a single immutable log entry recording progress toward a
// habit. Reports are only ever appended; ReportedAt is assigned by the
// repository at write time, never by the client.
type HabitReport struct {
	ID         string      `json:"id"`
	HabitID    string      `json:"habitId"`
	Value      ReportValue `json:"value"`
	ReportedAt time.Time   `json:"reportedAt"`
}

// ReportValue is the typed payload of a report. Exactly one arm is
// meaningful, selected by Kind, which mirrors the parent habit's type. Raw
// holds an unparseable numeric payload verbatim so it is preserved for
// manual correction; it contributes 0 to summed progress.
type ReportValue struct {
	Kind    HabitType `json:"kind"`
	Done    bool      `json:"done,omitempty"`
	Amount  float64   `json:"amount,omitempty"`
	Minutes int       `json:"minutes,omitempty"`
	Clock   string    `json:"clock,omitempty"`
	Option  string    `json:"option,omitempty"`
	Raw     string    `json:"raw,omitempty"`
}

// DoneValue marks a boolean habit as done. There is no "not done" report.
func DoneValue() ReportValue {
	return ReportValue{Kind: TypeBoolean, Done: true}
}

// AmountValue records a numeric magnitude for a number habit.
func AmountValue(amount float64) ReportValue {
	return ReportValue{Kind: TypeNumber, Amount: amount}
}

// MinutesValue records elapsed minutes for a duration habit.
func MinutesValue(minutes int) ReportValue {
	return ReportValue{Kind: TypeDuration, Minutes: minutes}
}

// ClockValue records a time-of-day string for a time habit.
func ClockValue(clock string) ReportValue {
	return ReportValue{Kind: TypeTime, Clock: clock}
}

// OptionValue records a selected option label for an options habit.
func OptionValue(option string) ReportValue {
	return ReportValue{Kind: TypeOptions, Option: option}
}

// Numeric returns the value's contribution to summed progress. Non-numeric
// kinds and unparseable payloads contribute 0.
func (v ReportValue) Numeric() float64 {
	if v.Raw != "" {
		return 0
	}
	switch v.Kind {
	case TypeNumber:
		return v.Amount
	case TypeDuration:
		return float64(v.Minutes)
	default:
		return 0
	}
}

// Display renders the payload for "last reported" labels.
func (v ReportValue) Display() string {
	if v.Raw != "" {
		return v.Raw
	}
	switch v.Kind {
	case TypeBoolean:
		return "done"
	case TypeNumber:
		return strconv.FormatFloat(v.Amount, 'f', -1, 64)
	case TypeDuration:
		return FormatMinutes(v.Minutes)
	case TypeTime:
		return v.Clock
	case TypeOptions:
		return v.Option
	default:
		return ""
	}
}

// Encode flattens the payload to a single string for storage.
func (v ReportValue) Encode() string {
	if v.Raw != "" {
		return v.Raw
	}
	switch v.Kind {
	case TypeBoolean:
		return "true"
	case TypeNumber:
		return strconv.FormatFloat(v.Amount, 'f', -1, 64)
	case TypeDuration:
		return strconv.Itoa(v.Minutes)
	case TypeTime:
		return v.Clock
	case TypeOptions:
		return v.Option
	default:
		return ""
	}
}

// DecodeReportValue rebuilds a payload from its stored string form.
func DecodeReportValue(kind HabitType, raw string) ReportValue {
	switch kind {
	case TypeBoolean:
		return DoneValue()
	case TypeNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ReportValue{Kind: TypeNumber, Raw: raw}
		}
		return AmountValue(f)
	case TypeDuration:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ReportValue{Kind: TypeDuration, Raw: raw}
		}
		return MinutesValue(n)
	case TypeTime:
		return ClockValue(raw)
	case TypeOptions:
		return OptionValue(raw)
	default:
		return ReportValue{Kind: kind, Raw: raw}
	}
}

// NormalizeReportValue converts a free-form value string into a typed
// payload according to the habit's type. Numeric kinds that fail to parse
// keep the original string unchanged rather than being zeroed; a report on a
// boolean habit always means "done".
func NormalizeReportValue(t HabitType, raw string) ReportValue {
	switch t {
	case TypeBoolean:
		return DoneValue()
	case TypeNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ReportValue{Kind: TypeNumber, Raw: raw}
		}
		return AmountValue(f)
	case TypeDuration:
		if m, ok := ParseMinutes(raw); ok {
			return MinutesValue(m)
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
			return MinutesValue(int(math.Round(f)))
		}
		return ReportValue{Kind: TypeDuration, Raw: raw}
	case TypeTime:
		return ClockValue(raw)
	case TypeOptions:
		return OptionValue(raw)
	default:
		return ReportValue{Kind: t, Raw: raw}
	}
}

// ReportRepository is the port for report persistence. Reports belong to
// exactly one habit and are append-only; the only delete is the batched
// delete-since used to reset a period.
type ReportRepository interface {
	// AppendReport stores a new report with a server-assigned timestamp and
	// returns the stored entry.
	AppendReport(ctx context.Context, userID int64, habitID string, v ReportValue) (HabitReport, error)
	// ListReportsSince returns reports with ReportedAt >= since, ordered by
	// ReportedAt ascending. No upper bound is applied.
	ListReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) ([]HabitReport, error)
	// DeleteReportsSince removes all reports with ReportedAt >= since in a
	// single batched operation.
	DeleteReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) error
	// DeleteReportsForHabit removes every report owned by a habit.
	DeleteReportsForHabit(ctx context.Context, userID int64, habitID string) error
}
