package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSeniorReactCase(t *testing.T) {
	j := JobFacts{
		Title:           "Senior React Developer",
		RequiredSkills:  []string{"React", "Node.js", "MongoDB", "JavaScript"},
		ExperienceLevel: "Senior Level",
		Location:        "Bangalore",
	}
	c := CandidateFacts{
		Skills:          []string{"React", "JavaScript", "Node.js"},
		ExperienceLevel: "senior",
		Location:        "Bangalore",
		PreferredRole:   "React Developer",
	}

	res := Score(j, c)

	// 3/4 навыков (37.5) + опыт (20) + локация (15) + роль (15) = 87.5 → 88
	assert.Equal(t, 88, res.MatchScore)
	assert.ElementsMatch(t, []string{"React", "Node.js", "JavaScript"}, res.MatchedSkills)
	assert.Equal(t, []string{"MongoDB"}, res.MissingSkills)
}

func TestScoreDeterministic(t *testing.T) {
	j := JobFacts{
		Title:           "Go Backend Engineer",
		RequiredSkills:  []string{"Go", "PostgreSQL", "Kubernetes"},
		ExperienceLevel: "mid",
		Location:        "Moscow",
	}
	c := CandidateFacts{
		Skills:          []string{"golang", "postgres"},
		ExperienceLevel: "middle",
		Location:        "moscow",
		PreferredRole:   "backend engineer",
	}
	first := Score(j, c)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(j, c))
	}
}

func TestScoreSkillAliases(t *testing.T) {
	res := Score(
		JobFacts{RequiredSkills: []string{"Node.js", "k8s", "Postgres"}},
		CandidateFacts{Skills: []string{"NodeJS", "Kubernetes", "PostgreSQL"}},
	)
	assert.Empty(t, res.MissingSkills)
	assert.Len(t, res.MatchedSkills, 3)
}

func TestScoreNoRequiredSkills(t *testing.T) {
	// Вакансия без требований не штрафует кандидата: подскор навыков 100.
	res := Score(
		JobFacts{Title: "Intern", ExperienceLevel: "expert", Location: "Tokyo"},
		CandidateFacts{ExperienceLevel: "junior", Location: "Berlin", PreferredRole: "designer"},
	)
	assert.Equal(t, 50, res.MatchScore)
	assert.Empty(t, res.MatchedSkills)
	assert.Empty(t, res.MissingSkills)
}

func TestScoreEmptyLocationAndRole(t *testing.T) {
	// Пустая локация или роль с любой стороны — несовпадение, не совпадение.
	res := Score(
		JobFacts{RequiredSkills: []string{"Go"}, ExperienceLevel: "senior", Location: ""},
		CandidateFacts{Skills: []string{"Go"}, ExperienceLevel: "senior", Location: "Anywhere", PreferredRole: ""},
	)
	// 50 (навыки) + 20 (опыт) + 0 + 0
	assert.Equal(t, 70, res.MatchScore)
}

func TestMapLevel(t *testing.T) {
	cases := map[string]Level{
		"junior":           LevelEntry,
		"Internship":       LevelEntry,
		"fresher":          LevelEntry,
		"mid":              LevelMid,
		"Associate":        LevelMid,
		"Mid-Senior Level": LevelMid,
		"senior":           LevelSenior,
		"Senior Level":     LevelSenior,
		"Lead":             LevelExpert,
		"principal":        LevelExpert,
		"Expert/Principal": LevelExpert,
		"":                 LevelEntry,
		"что-то странное":  LevelEntry,
	}
	for raw, want := range cases {
		require.Equal(t, want, MapLevel(raw), "raw=%q", raw)
	}
}

func TestScoreBounds(t *testing.T) {
	full := Score(
		JobFacts{Title: "Go Developer", RequiredSkills: []string{"Go"}, ExperienceLevel: "senior", Location: "Kazan"},
		CandidateFacts{Skills: []string{"Go"}, ExperienceLevel: "senior", Location: "Kazan", PreferredRole: "Go Developer"},
	)
	assert.Equal(t, 100, full.MatchScore)

	zero := Score(
		JobFacts{Title: "Designer", RequiredSkills: []string{"Figma"}, ExperienceLevel: "lead", Location: "Sochi"},
		CandidateFacts{Skills: []string{"Go"}, ExperienceLevel: "junior", Location: "Perm", PreferredRole: "backend"},
	)
	assert.Equal(t, 0, zero.MatchScore)
}
