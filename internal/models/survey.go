// ABOUTME: Likert survey models: answer values, survey answers, and domain strengths.
// ABOUTME: Declares the fixed six-section, five-question self-assessment table.
package models

import (
	"fmt"
	"time"
)

// LikertValue is one of the five agreement levels.
type LikertValue string

const (
	StronglyAgree    LikertValue = "strongly_agree"
	Agree            LikertValue = "agree"
	Unsure           LikertValue = "unsure"
	Disagree         LikertValue = "disagree"
	StronglyDisagree LikertValue = "strongly_disagree"
)

// LikertPoints maps each agreement level to its point value.
var LikertPoints = map[LikertValue]int{
	StronglyAgree:    2,
	Agree:            1,
	Unsure:           0,
	Disagree:         -1,
	StronglyDisagree: -2,
}

// AllLikertValues lists agreement levels from strongest agreement down.
var AllLikertValues = []LikertValue{StronglyAgree, Agree, Unsure, Disagree, StronglyDisagree}

// IsValidLikertValue checks if a string is a known agreement level.
func IsValidLikertValue(s string) bool {
	_, ok := LikertPoints[LikertValue(s)]
	return ok
}

// SurveyAnswer is a single Likert answer for one question of one section.
type SurveyAnswer struct {
	SectionIndex  int         `json:"section_index" yaml:"section_index" validate:"min=0,max=5"`
	QuestionIndex int         `json:"question_index" yaml:"question_index" validate:"min=0,max=4"`
	Value         LikertValue `json:"value" yaml:"value" validate:"oneof=strongly_agree agree unsure disagree strongly_disagree"`
	AnsweredAt    time.Time   `json:"answered_at" yaml:"answered_at"`
}

// NewSurveyAnswer creates an answer stamped with the current time.
func NewSurveyAnswer(section, question int, value LikertValue) *SurveyAnswer {
	return &SurveyAnswer{
		SectionIndex:  section,
		QuestionIndex: question,
		Value:         value,
		AnsweredAt:    time.Now().UTC(),
	}
}

// Key returns the storage key "{section}_{question}".
func (a *SurveyAnswer) Key() string {
	return AnswerKey(a.SectionIndex, a.QuestionIndex)
}

// AnswerKey builds the storage key for a section/question pair.
func AnswerKey(section, question int) string {
	return fmt.Sprintf("%d_%d", section, question)
}

// DomainStrength is a section's 0-100 strength.
type DomainStrength struct {
	Label      string `json:"label" yaml:"label"`
	Percentage int    `json:"percentage" yaml:"percentage"`
}

// SurveySection is one domain of the self-assessment.
type SurveySection struct {
	Title     string
	Subtitle  string
	Questions []string
}

// QuestionsPerSection is fixed across every section.
const QuestionsPerSection = 5

// SurveySections is the immutable question table. Order defines SectionIndex.
var SurveySections = []SurveySection{
	{
		Title:    "Self-Worth",
		Subtitle: "How you value yourself",
		Questions: []string{
			"I believe I deserve good things in my life.",
			"I can accept compliments without deflecting them.",
			"My worth does not depend on my productivity.",
			"I treat myself with the kindness I show a friend.",
			"I feel comfortable saying no when I need to.",
		},
	},
	{
		Title:    "Resilience",
		Subtitle: "How you meet setbacks",
		Questions: []string{
			"I recover from disappointments fairly quickly.",
			"I see challenges as something I can learn from.",
			"I can stay calm when plans change suddenly.",
			"I ask for help when I am struggling.",
			"I trust myself to get through hard seasons.",
		},
	},
	{
		Title:    "Relationships",
		Subtitle: "How you connect with others",
		Questions: []string{
			"I have people I can be fully honest with.",
			"I express my needs clearly to the people close to me.",
			"I can celebrate others' success without envy.",
			"I set boundaries that protect my relationships.",
			"I feel a sense of belonging in my community.",
		},
	},
	{
		Title:    "Purpose",
		Subtitle: "How your days connect to meaning",
		Questions: []string{
			"My daily work feels connected to something I care about.",
			"I know what I want the next year of my life to look like.",
			"I make decisions based on my own values.",
			"I regularly make time for what matters most to me.",
			"I believe my contribution makes a difference.",
		},
	},
	{
		Title:    "Abundance",
		Subtitle: "How you relate to money and opportunity",
		Questions: []string{
			"I believe there are enough opportunities for me.",
			"I feel calm when I think about my finances.",
			"I can receive generosity without guilt.",
			"I give freely without keeping score.",
			"I expect good things to come my way.",
		},
	},
	{
		Title:    "Vitality",
		Subtitle: "How you care for body and energy",
		Questions: []string{
			"I listen to what my body needs.",
			"I rest without feeling guilty.",
			"I move my body in ways I enjoy.",
			"I have energy for the things I care about.",
			"I see my health as an investment, not a chore.",
		},
	},
}

// SectionIndexByTitle returns the index of the section with the given title.
func SectionIndexByTitle(title string) (int, bool) {
	for i, s := range SurveySections {
		if s.Title == title {
			return i, true
		}
	}
	return -1, false
}
