package match

import (
	"math"

	"github.com/artem13815/jobportal/pkg/nlp"
)

// Весовые коэффициенты подскоров; в сумме дают 1.0.
const (
	weightSkills     = 0.50
	weightExperience = 0.20
	weightLocation   = 0.15
	weightRole       = 0.15
)

// Level — четырёхуровневая шкала опыта, к которой приводятся
// «сырые» значения из профилей и вакансий.
type Level string

const (
	LevelEntry  Level = "Entry Level"
	LevelMid    Level = "Mid-Senior Level"
	LevelSenior Level = "Senior Level"
	LevelExpert Level = "Expert/Principal"
)

// levelTable — фиксированная таблица соответствия сырых значений уровням.
var levelTable = map[string]Level{
	"entry":            LevelEntry,
	"entry level":      LevelEntry,
	"intern":           LevelEntry,
	"internship":       LevelEntry,
	"junior":           LevelEntry,
	"fresher":          LevelEntry,
	"trainee":          LevelEntry,
	"mid":              LevelMid,
	"middle":           LevelMid,
	"intermediate":     LevelMid,
	"associate":        LevelMid,
	"mid senior level": LevelMid,
	"senior":           LevelSenior,
	"senior level":     LevelSenior,
	"expert":           LevelExpert,
	"principal":        LevelExpert,
	"expert principal": LevelExpert,
	"lead":             LevelExpert,
	"staff":            LevelExpert,
	"architect":        LevelExpert,
	"director":         LevelExpert,
}

// MapLevel приводит сырое значение уровня к шкале Level.
// Неизвестные значения считаются Entry Level.
func MapLevel(raw string) Level {
	if lvl, ok := levelTable[nlp.Normalize(raw)]; ok {
		return lvl
	}
	return LevelEntry
}

// JobFacts — данные вакансии, участвующие в подсчёте.
type JobFacts struct {
	Title           string
	RequiredSkills  []string
	ExperienceLevel string
	Location        string
}

// CandidateFacts — данные профиля кандидата.
type CandidateFacts struct {
	Skills          []string
	ExperienceLevel string
	Location        string
	PreferredRole   string
}

// Result — итог сопоставления кандидата и вакансии.
type Result struct {
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// Score считает детерминированный скор соответствия 0–100.
// Никаких побочных эффектов и I/O: одинаковый вход — одинаковый выход.
func Score(j JobFacts, c CandidateFacts) Result {
	res := Result{MatchedSkills: []string{}, MissingSkills: []string{}}

	// Навыки: доля требуемых навыков, найденных у кандидата.
	// Вакансия без требований не штрафует кандидата.
	skillScore := 100.0
	if len(j.RequiredSkills) > 0 {
		have := nlp.SkillSet(c.Skills)
		matched := 0
		for _, req := range j.RequiredSkills {
			found := false
			for _, v := range nlp.SkillVariants(req) {
				if _, ok := have[v]; ok {
					found = true
					break
				}
			}
			if found {
				matched++
				res.MatchedSkills = append(res.MatchedSkills, req)
			} else {
				res.MissingSkills = append(res.MissingSkills, req)
			}
		}
		skillScore = 100 * float64(matched) / float64(len(j.RequiredSkills))
	}

	// Опыт: бинарное совпадение по четырёхуровневой шкале.
	expScore := 0.0
	if MapLevel(c.ExperienceLevel) == MapLevel(j.ExperienceLevel) {
		expScore = 100
	}

	// Локация и роль: вхождение одной строки в другую в любую сторону.
	locScore := 0.0
	if nlp.ContainsEither(j.Location, c.Location) {
		locScore = 100
	}
	roleScore := 0.0
	if nlp.ContainsEither(j.Title, c.PreferredRole) {
		roleScore = 100
	}

	total := weightSkills*skillScore + weightExperience*expScore +
		weightLocation*locScore + weightRole*roleScore
	res.MatchScore = int(math.Round(total))
	return res
}
