package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/candidate"
	"github.com/artem13815/jobportal/pkg/job"
	"github.com/artem13815/jobportal/pkg/llm"
	"github.com/artem13815/jobportal/pkg/match"
	"github.com/artem13815/jobportal/pkg/nlp"
)

// ATSScorer — резидентный скорер: детерминированная эвристика соответствия
// плюс необязательное обогащение отчёта через LLM. Скор всегда считает
// эвристика; недоступность LLM деградирует мягко и скан не валит.
type ATSScorer struct {
	llm        llm.ChatModel
	modelName  string
	timeout    time.Duration
	maxTextLen int
}

// NewATSScorer создаёт скорер; model может быть nil — тогда отчёт
// ограничивается детерминированной частью.
func NewATSScorer(model llm.ChatModel, modelName string) *ATSScorer {
	return &ATSScorer{
		llm:        model,
		modelName:  modelName,
		timeout:    30 * time.Second,
		maxTextLen: 12_000,
	}
}

func (s *ATSScorer) Score(ctx context.Context, j job.Job, p candidate.Profile) (int, application.Analysis, error) {
	res := match.Score(
		match.JobFacts{
			Title:           j.Title,
			RequiredSkills:  j.RequiredSkills,
			ExperienceLevel: j.ExperienceLevel,
			Location:        j.Location,
		},
		match.CandidateFacts{
			Skills:          p.Skills,
			ExperienceLevel: p.ExperienceLevel,
			Location:        p.Location,
			PreferredRole:   p.PreferredRole,
		},
	)
	an := application.Analysis{
		MatchedSkills: res.MatchedSkills,
		MissingSkills: res.MissingSkills,
		Strengths:     []string{},
		Weaknesses:    []string{},
		Improvements:  []string{},
	}

	// Обогащение через LLM; при сбое оставляем детерминированный отчёт.
	if s.llm != nil {
		enriched, err := s.askLLM(ctx, j, p, res)
		if err == nil {
			an.Strengths = enriched.Strengths
			an.Weaknesses = enriched.Weaknesses
			an.Improvements = enriched.Improvements
			an.Recommendation = enriched.Recommendation
			an.Summary = enriched.Summary
		} else {
			an.Recommendation = fmt.Sprintf("LLM временно недоступен: %v", err)
		}
	}
	return res.MatchScore, an, nil
}

type llmPayload struct {
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Improvements   []string `json:"improvements"`
	Recommendation string   `json:"recommendation"`
	Summary        string   `json:"summary"`
}

func (s *ATSScorer) askLLM(ctx context.Context, j job.Job, p candidate.Profile, res match.Result) (llmPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text := nlp.Truncate(strings.TrimSpace(p.ResumeText), s.maxTextLen)
	system := "Ты HR-аналитик. Верни результат строго в JSON без пояснений."
	user := fmt.Sprintf(
		"Вакансия:\nНазвание: %s\nОписание: %s\nТребуемые навыки: %s\n\nСовпавшие навыки: %s\nОтсутствующие навыки: %s\nСкор соответствия: %d\n\nТекст резюме:\n<<<\n%s\n>>>\n\nВерни JSON с полями:\n- strengths (string[])\n- weaknesses (string[])\n- improvements (string[])\n- recommendation (string)\n- summary (string)\n",
		j.Title,
		j.Description,
		strings.Join(j.RequiredSkills, ", "),
		strings.Join(res.MatchedSkills, ", "),
		strings.Join(res.MissingSkills, ", "),
		res.MatchScore,
		text,
	)
	raw, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return llmPayload{}, err
	}
	raw = strings.TrimSpace(raw)
	// best-effort JSON parse
	var out llmPayload
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}
	// try to extract JSON from fenced block
	if i := strings.Index(raw, "{"); i >= 0 {
		if k := strings.LastIndex(raw, "}"); k > i {
			if err := json.Unmarshal([]byte(raw[i:k+1]), &out); err == nil {
				return out, nil
			}
		}
	}
	return llmPayload{}, fmt.Errorf("не удалось распарсить JSON ответ LLM")
}
