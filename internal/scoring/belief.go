// ABOUTME: Belief scoring: turns a day's yes/no answers into a clamped daily score.
// ABOUTME: Empowering yes counts +1, shadow yes counts -1, no counts nothing.
package scoring

import "github.com/harperreed/journey/internal/models"

const (
	MinDailyScore = -10
	MaxDailyScore = 10
)

// Tally is the scored result of one day's responses.
type Tally struct {
	PositiveYesCount int `json:"positive_yes_count"`
	NegativeYesCount int `json:"negative_yes_count"`
	DailyScore       int `json:"daily_score"`
}

// DailyScore clamps positive minus negative yes counts to [MinDailyScore, MaxDailyScore].
func DailyScore(positive, negative int) int {
	return max(MinDailyScore, min(positive-negative, MaxDailyScore))
}

// ScoreResponses tallies a response set against a prompt catalog.
// Answers for prompts missing from the catalog are ignored. A nil or empty
// set yields a zero tally.
func ScoreResponses(prompts []models.BeliefPrompt, set *models.DailyResponseSet) Tally {
	var t Tally
	if set == nil {
		return t
	}

	categories := make(map[string]models.Category, len(prompts))
	for _, p := range prompts {
		categories[p.ID] = p.Category
	}

	for id, yes := range set.Answers {
		if !yes {
			continue
		}
		switch categories[id] {
		case models.CategoryEmpowering:
			t.PositiveYesCount++
		case models.CategoryShadow:
			t.NegativeYesCount++
		}
	}

	t.DailyScore = DailyScore(t.PositiveYesCount, t.NegativeYesCount)
	return t
}

// Apply copies the tally onto a record.
func (t Tally) Apply(r *models.CheckinRecord) *models.CheckinRecord {
	return r.WithCounts(t.PositiveYesCount, t.NegativeYesCount, t.DailyScore)
}
