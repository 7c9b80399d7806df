package agent

import (
	"context"
	"fmt"
	"strings"

	"habitkit/internal/app"
)

const coachSystemPrompt = "You are a supportive habit coach. Given the user's habits and their " +
	"progress for the current period, write a short, encouraging note (3-5 sentences). Mention at " +
	"most two specific habits. No markdown, no lists."

// Coach turns the current habit statuses into a short AI-written feedback
// note. A model failure surfaces as a single error; there is no retry.
type Coach struct {
	gen TextGenerator
}

// NewCoach creates a Coach backed by the given generator.
func NewCoach(gen TextGenerator) *Coach {
	return &Coach{gen: gen}
}

// Feedback generates a coaching note for the given statuses.
func (c *Coach) Feedback(ctx context.Context, statuses []app.HabitStatus) (string, error) {
	if len(statuses) == 0 {
		return "You haven't set up any habits yet. Create one and I'll cheer you on.", nil
	}

	var b strings.Builder
	b.WriteString(coachSystemPrompt)
	b.WriteString("\n\nProgress this period:\n")
	for _, st := range statuses {
		state := "in progress"
		if st.Completed {
			state = "completed"
		}
		fmt.Fprintf(&b, "- %s (%s, goal %q): progress %g of %d, %s", st.Name, st.Frequency, st.Goal, st.Progress, st.Target, state)
		if st.LastReported != "" {
			fmt.Fprintf(&b, ", last report %s", st.LastReported)
		}
		b.WriteString("\n")
	}

	note, err := c.gen.GenerateText(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("coach feedback: %w", err)
	}
	return note, nil
}
