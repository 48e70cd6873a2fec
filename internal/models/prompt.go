// ABOUTME: BeliefPrompt model, prompt categories, and the daily response set.
// ABOUTME: Holds the static catalog of empowering and shadow belief prompts.
package models

import "cloud.google.com/go/civil"

// Category tags a belief prompt as empowering (+1 on yes) or shadow (-1 on yes).
type Category string

const (
	CategoryEmpowering Category = "empowering"
	CategoryShadow     Category = "shadow"
)

// BeliefPrompt is a yes/no daily statement.
type BeliefPrompt struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Text     string   `json:"text" yaml:"text"`
}

// DefaultPrompts is the catalog asked during a daily check-in.
var DefaultPrompts = []BeliefPrompt{
	{ID: "capable", Category: CategoryEmpowering, Text: "I am capable of handling what today brings."},
	{ID: "worthy", Category: CategoryEmpowering, Text: "I am worthy of good things without having to earn them."},
	{ID: "growth", Category: CategoryEmpowering, Text: "Mistakes I made today are part of how I grow."},
	{ID: "connected", Category: CategoryEmpowering, Text: "I felt connected to the people around me."},
	{ID: "abundance", Category: CategoryEmpowering, Text: "There is enough opportunity for me and for others."},
	{ID: "not-enough", Category: CategoryShadow, Text: "I am not doing enough."},
	{ID: "imposter", Category: CategoryShadow, Text: "Sooner or later people will see I don't belong."},
	{ID: "control", Category: CategoryShadow, Text: "If I stop controlling things, they will fall apart."},
	{ID: "alone", Category: CategoryShadow, Text: "I have to handle everything on my own."},
	{ID: "scarcity", Category: CategoryShadow, Text: "If someone else wins, I lose."},
}

// PromptByID returns the catalog prompt with the given ID.
func PromptByID(prompts []BeliefPrompt, id string) (BeliefPrompt, bool) {
	for _, p := range prompts {
		if p.ID == id {
			return p, true
		}
	}
	return BeliefPrompt{}, false
}

// DailyResponseSet maps prompt IDs to yes (true) / no (false) for one date.
type DailyResponseSet struct {
	Date    civil.Date
	Answers map[string]bool
}

// NewDailyResponseSet creates an empty response set for a date.
func NewDailyResponseSet(date civil.Date) *DailyResponseSet {
	return &DailyResponseSet{
		Date:    date,
		Answers: make(map[string]bool),
	}
}

// Answer records a yes/no answer for a prompt.
func (s *DailyResponseSet) Answer(promptID string, yes bool) *DailyResponseSet {
	s.Answers[promptID] = yes
	return s
}
