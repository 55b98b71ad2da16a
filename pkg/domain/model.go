package domain

import "sort"

// Trend marks a model's movement on the scoreboard since the last update.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
)

// ScoreDimension selects which benchmark column a ranking is computed over.
type ScoreDimension string

const (
	ScoreOverall   ScoreDimension = "overall"
	ScoreCoding    ScoreDimension = "coding"
	ScoreReasoning ScoreDimension = "reasoning"
	ScoreCreative  ScoreDimension = "creative"
)

// ModelScore is one AI model's standing on the comparison leaderboard.
// VoteCount only ever increases.
type ModelScore struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Company       string  `json:"company"`
	Overall       float64 `json:"overall"`
	Coding        float64 `json:"coding"`
	Reasoning     float64 `json:"reasoning"`
	Creative      float64 `json:"creative"`
	ContextWindow string  `json:"contextWindow"`
	Highlight     string  `json:"highlight,omitempty"`
	Trend         Trend   `json:"trend"`
	VoteCount     int     `json:"voteCount"`
	UpdatedAt     string  `json:"updatedAt"`
}

// Score returns the model's value on the given dimension. Unknown dimensions
// fall back to the overall score.
func (m *ModelScore) Score(dim ScoreDimension) float64 {
	switch dim {
	case ScoreCoding:
		return m.Coding
	case ScoreReasoning:
		return m.Reasoning
	case ScoreCreative:
		return m.Creative
	default:
		return m.Overall
	}
}

// RankModels returns a new slice ordered by the chosen dimension, highest
// first. The sort is stable: ties keep their input order. The input is not
// modified.
func RankModels(models []ModelScore, dim ScoreDimension) []ModelScore {
	ranked := make([]ModelScore, len(models))
	copy(ranked, models)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score(dim) > ranked[j].Score(dim)
	})
	return ranked
}
