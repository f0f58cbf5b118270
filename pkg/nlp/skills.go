package nlp

// aliases maps a normalized skill to its interchangeable spellings.
// Intentionally small; extend as needed.
var aliases = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"node":       {"node js", "nodejs"},
	"node js":    {"node", "nodejs"},
	"nodejs":     {"node", "node js"},
	"react":      {"react js", "reactjs"},
	"react js":   {"react", "reactjs"},
	"reactjs":    {"react", "react js"},
	"mongo":      {"mongodb"},
	"mongodb":    {"mongo"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd"},
	"cicd":       {"ci cd"},
}

// SkillVariants возвращает нормализованные варианты написания навыка
// (синонимы/алиасы). Первый элемент — сама нормализованная форма.
func SkillVariants(skill string) []string {
	base := Normalize(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	for _, a := range aliases[base] {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// SkillSet нормализует список навыков в множество, включая алиасы.
func SkillSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		for _, v := range SkillVariants(s) {
			out[v] = struct{}{}
		}
	}
	return out
}
