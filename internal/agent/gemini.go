package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const resolverSystemPrompt = "You are the assistant inside a habit-tracking app. " +
	"Given the user's instruction and their current habits and categories, call exactly one of the " +
	"provided functions, or reply with a short clarifying question when the instruction is ambiguous " +
	"or missing required details. Never guess habit ids: only use ids listed in the context. " +
	"For progress reports pass the user's value as given; the app normalizes it."

// Gemini resolves intents and generates text with the Gemini API. It is the
// single non-deterministic dependency of the agent; its output is validated
// by the dispatcher before use.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed resolver. model may be empty to use the
// default.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

var _ IntentResolver = (*Gemini)(nil)
var _ TextGenerator = (*Gemini)(nil)

// ResolveIntent asks the model to pick one operation for the instruction.
// A response without a function call is treated as a clarifying question.
func (g *Gemini) ResolveIntent(ctx context.Context, instruction string, snap Snapshot) (*Resolution, error) {
	prompt := fmt.Sprintf("%s\n\nInstruction: %s", serializeSnapshot(snap), instruction)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(resolverSystemPrompt, genai.RoleUser),
		Tools:             []*genai.Tool{{FunctionDeclarations: operationDeclarations()}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if calls := resp.FunctionCalls(); len(calls) > 0 {
		c := calls[0]
		return &Resolution{Call: &OperationCall{Name: c.Name, Args: c.Args}}, nil
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, errors.New("model returned neither an operation nor a message")
	}
	return &Resolution{Clarification: text}, nil
}

// GenerateText runs a plain text generation for the given prompt.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("model returned an empty response")
	}
	return text, nil
}

// serializeSnapshot renders the habit and category lists the model is
// allowed to reference. Ids outside this context are rejected downstream.
func serializeSnapshot(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("Current habits:\n")
	if len(snap.Habits) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, h := range snap.Habits {
		fmt.Fprintf(&b, "  id=%s name=%q type=%s frequency=%s goal=%q", h.ID, h.Name, h.Type, h.Frequency, h.Goal)
		if h.Description != "" {
			fmt.Fprintf(&b, " description=%q", h.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString("Current categories:\n")
	if len(snap.Categories) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range snap.Categories {
		fmt.Fprintf(&b, "  id=%s name=%q\n", c.ID, c.Name)
	}
	return b.String()
}

func operationDeclarations() []*genai.FunctionDeclaration {
	habitTypeEnum := []string{"duration", "time", "boolean", "number", "options"}
	frequencyEnum := []string{"daily", "weekly"}

	return []*genai.FunctionDeclaration{
		{
			Name:        OpCreateHabit,
			Description: "Create a new habit. Only call when name, description, type, frequency, goal, and icon can all be confidently extracted.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString, Description: "Short habit name."},
					"description": {Type: genai.TypeString, Description: "One-sentence description."},
					"type":        {Type: genai.TypeString, Enum: habitTypeEnum},
					"frequency":   {Type: genai.TypeString, Enum: frequencyEnum},
					"goal":        {Type: genai.TypeString, Description: "Free-form target, e.g. \"30 minutes\" or \"8 glasses\"."},
					"icon":        {Type: genai.TypeString, Description: "A single emoji for the habit."},
					"categoryId":  {Type: genai.TypeString, Description: "Optional id of an existing category."},
					"options": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Choice labels, required for options-type habits.",
					},
				},
				Required: []string{"name", "description", "type", "frequency", "goal", "icon"},
			},
		},
		{
			Name:        OpUpdateHabit,
			Description: "Update fields of an existing habit. habitId must be an id from the context.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"habitId":     {Type: genai.TypeString},
					"name":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"type":        {Type: genai.TypeString, Enum: habitTypeEnum},
					"frequency":   {Type: genai.TypeString, Enum: frequencyEnum},
					"goal":        {Type: genai.TypeString},
					"icon":        {Type: genai.TypeString},
					"categoryId":  {Type: genai.TypeString},
					"options":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"habitId"},
			},
		},
		{
			Name:        OpReportProgress,
			Description: "Record progress toward an existing habit. habitId must be an id from the context.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"habitId": {Type: genai.TypeString},
					"value":   {Type: genai.TypeString, Description: "The reported value as the user stated it."},
				},
				Required: []string{"habitId", "value"},
			},
		},
	}
}
