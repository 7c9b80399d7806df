package agent

import (
	"context"
	"fmt"
	"strings"

	"habitkit/internal/domain"
)

// Store is the slice of the application the dispatcher may write through.
// It is satisfied by app.HabitService.
type Store interface {
	CreateHabit(ctx context.Context, userID int64, h domain.Habit) (domain.Habit, error)
	UpdateHabit(ctx context.Context, userID int64, id string, patch domain.HabitPatch) error
	AppendReport(ctx context.Context, userID int64, habitID string, v domain.ReportValue) (domain.HabitReport, error)
}

// Dispatcher runs one natural-language instruction end to end: snapshot
// read, intent resolution, parameter validation, and at most one write.
type Dispatcher struct {
	resolver   IntentResolver
	habits     domain.HabitRepository
	categories domain.CategoryRepository
	store      Store
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(resolver IntentResolver, habits domain.HabitRepository, categories domain.CategoryRepository, store Store) *Dispatcher {
	return &Dispatcher{resolver: resolver, habits: habits, categories: categories, store: store}
}

// Result is the user-facing outcome of a dispatch. Clarification results
// carry a question instead of a confirmation and mean nothing was written.
type Result struct {
	Reply         string `json:"reply"`
	Clarification bool   `json:"clarification"`
	Action        string `json:"action,omitempty"`
}

func clarify(format string, args ...any) (Result, error) {
	return Result{Reply: fmt.Sprintf(format, args...), Clarification: true}, nil
}

// Dispatch handles a single instruction. Ambiguous or under-specified
// instructions produce a clarifying question, never an error and never a
// write; a hosted-model failure is returned as an error for the caller to
// surface generically.
func (d *Dispatcher) Dispatch(ctx context.Context, userID int64, query string) (Result, error) {
	if strings.TrimSpace(query) == "" {
		return clarify("What would you like to do with your habits?")
	}

	habits, err := d.habits.ListHabits(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	categories, err := d.categories.ListCategories(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	snap := Snapshot{Habits: habits, Categories: categories}

	res, err := d.resolver.ResolveIntent(ctx, query, snap)
	if err != nil {
		return Result{}, fmt.Errorf("resolve intent: %w", err)
	}
	if res.Call == nil {
		if res.Clarification == "" {
			return clarify("Could you rephrase that?")
		}
		return Result{Reply: res.Clarification, Clarification: true}, nil
	}

	switch res.Call.Name {
	case OpCreateHabit:
		return d.createHabit(ctx, userID, snap, res.Call.Args)
	case OpUpdateHabit:
		return d.updateHabit(ctx, userID, snap, res.Call.Args)
	case OpReportProgress:
		return d.reportProgress(ctx, userID, snap, res.Call.Args)
	default:
		return clarify("I can create a habit, update one, or record progress. Which would you like?")
	}
}

func (d *Dispatcher) createHabit(ctx context.Context, userID int64, snap Snapshot, args map[string]any) (Result, error) {
	var missing []string
	need := func(key string) string {
		v, ok := stringArg(args, key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	}
	name := need("name")
	description := need("description")
	rawType := need("type")
	rawFrequency := need("frequency")
	goal := need("goal")
	icon := need("icon")
	if len(missing) > 0 {
		return clarify("To create that habit I still need: %s.", strings.Join(missing, ", "))
	}

	habitType, ok := domain.ParseHabitType(rawType)
	if !ok {
		return clarify("What kind of habit is %q? I know duration, time, boolean, number, and options.", name)
	}
	frequency, ok := domain.ParseFrequency(rawFrequency)
	if !ok {
		return clarify("Should %q be tracked daily or weekly?", name)
	}

	h := domain.Habit{
		Name:        name,
		Description: description,
		Type:        habitType,
		Frequency:   frequency,
		Goal:        goal,
		Icon:        icon,
		Options:     stringsArg(args, "options"),
	}
	if categoryID, ok := stringArg(args, "categoryId"); ok {
		if !snap.HasCategory(categoryID) {
			return clarify("I couldn't find that category. Which of your categories should %q go in?", name)
		}
		h.CategoryID = categoryID
	}
	if habitType == domain.TypeOptions && len(h.Options) == 0 {
		return clarify("An options habit needs its choices. What are the options for %q?", name)
	}

	created, err := d.store.CreateHabit(ctx, userID, h)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Reply:  fmt.Sprintf("Created habit %q (%s, %s) with goal %q.", created.Name, created.Type, created.Frequency, created.Goal),
		Action: OpCreateHabit,
	}, nil
}

func (d *Dispatcher) updateHabit(ctx context.Context, userID int64, snap Snapshot, args map[string]any) (Result, error) {
	id, ok := stringArg(args, "habitId")
	if !ok {
		return clarify("Which habit should I update?")
	}
	habit := snap.HabitByID(id)
	if habit == nil {
		return clarify("I couldn't match that to one of your habits. Which one did you mean?")
	}

	var patch domain.HabitPatch
	changed := false
	if v, ok := stringArg(args, "name"); ok {
		patch.Name = &v
		changed = true
	}
	if v, ok := stringArg(args, "description"); ok {
		patch.Description = &v
		changed = true
	}
	if v, ok := stringArg(args, "goal"); ok {
		patch.Goal = &v
		changed = true
	}
	if v, ok := stringArg(args, "icon"); ok {
		patch.Icon = &v
		changed = true
	}
	if v, ok := stringArg(args, "type"); ok {
		t, valid := domain.ParseHabitType(v)
		if !valid {
			return clarify("I don't recognize the habit type %q.", v)
		}
		patch.Type = &t
		changed = true
	}
	if v, ok := stringArg(args, "frequency"); ok {
		f, valid := domain.ParseFrequency(v)
		if !valid {
			return clarify("Should %q be tracked daily or weekly?", habit.Name)
		}
		patch.Frequency = &f
		changed = true
	}
	if v, ok := stringArg(args, "categoryId"); ok {
		if !snap.HasCategory(v) {
			return clarify("I couldn't find that category. Which of your categories should %q go in?", habit.Name)
		}
		patch.CategoryID = &v
		changed = true
	}
	if opts := stringsArg(args, "options"); len(opts) > 0 {
		patch.Options = &opts
		changed = true
	}
	if !changed {
		return clarify("What should I change about %q?", habit.Name)
	}

	if err := d.store.UpdateHabit(ctx, userID, id, patch); err != nil {
		return Result{}, err
	}
	return Result{
		Reply:  fmt.Sprintf("Updated habit %q.", habit.Name),
		Action: OpUpdateHabit,
	}, nil
}

func (d *Dispatcher) reportProgress(ctx context.Context, userID int64, snap Snapshot, args map[string]any) (Result, error) {
	id, ok := stringArg(args, "habitId")
	if !ok {
		return clarify("Which habit is this progress for?")
	}
	habit := snap.HabitByID(id)
	if habit == nil {
		return clarify("I couldn't match that to one of your habits. Which one did you mean?")
	}
	raw, ok := stringArg(args, "value")
	if !ok && habit.Type != domain.TypeBoolean {
		return clarify("What value should I record for %q?", habit.Name)
	}

	v := domain.NormalizeReportValue(habit.Type, raw)
	if _, err := d.store.AppendReport(ctx, userID, habit.ID, v); err != nil {
		return Result{}, err
	}
	return Result{
		Reply:  fmt.Sprintf("Logged %s for %q.", v.Display(), habit.Name),
		Action: OpReportProgress,
	}, nil
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

func stringsArg(args map[string]any, key string) []string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
