package domain

import "testing"

func scoreboard() []ModelScore {
	return []ModelScore{
		{ID: 1, Name: "Atlas", Overall: 91.2, Coding: 88.0, Reasoning: 93.5, Creative: 85.0},
		{ID: 2, Name: "Borealis", Overall: 89.7, Coding: 92.3, Reasoning: 90.1, Creative: 85.0},
		{ID: 3, Name: "Cirrus", Overall: 89.7, Coding: 81.4, Reasoning: 95.0, Creative: 90.2},
	}
}

func TestRankModels_DescendingOnDimension(t *testing.T) {
	ranked := RankModels(scoreboard(), ScoreCoding)

	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Coding < ranked[i].Coding {
			t.Errorf("Ranking not descending at position %d: %.1f < %.1f",
				i, ranked[i-1].Coding, ranked[i].Coding)
		}
	}
	if ranked[0].Name != "Borealis" {
		t.Errorf("Expected Borealis first on coding, got %s", ranked[0].Name)
	}
}

func TestRankModels_TiesKeepInputOrder(t *testing.T) {
	// Atlas and Borealis tie on creative; Atlas comes first in the input.
	ranked := RankModels(scoreboard(), ScoreCreative)

	if ranked[0].Name != "Cirrus" {
		t.Fatalf("Expected Cirrus first on creative, got %s", ranked[0].Name)
	}
	if ranked[1].Name != "Atlas" || ranked[2].Name != "Borealis" {
		t.Errorf("Expected tie broken by input order (Atlas, Borealis), got (%s, %s)",
			ranked[1].Name, ranked[2].Name)
	}
}

func TestRankModels_DoesNotMutateInput(t *testing.T) {
	models := scoreboard()
	RankModels(models, ScoreReasoning)

	if models[0].Name != "Atlas" || models[1].Name != "Borealis" || models[2].Name != "Cirrus" {
		t.Error("RankModels mutated its input slice")
	}
}

func TestScore_UnknownDimensionFallsBackToOverall(t *testing.T) {
	m := ModelScore{Overall: 77.7, Coding: 11.1}
	if got := m.Score(ScoreDimension("benchmarks")); got != 77.7 {
		t.Errorf("Expected overall fallback 77.7, got %.1f", got)
	}
}
