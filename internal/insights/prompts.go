package insights

import (
	"fmt"
	"strings"
)

func childInsightPrompt(name string, missionCount int, lastActivity string) string {
	return fmt.Sprintf(
		"Проанализируй прогресс ребенка %s. Активных миссий: %d. Последнее: %s. Дай короткую общую сводку (2-3 предложения).",
		name, missionCount, lastActivity,
	)
}

func ideasPrompt(kind, childContext string) (string, error) {
	switch kind {
	case KindAdvice:
		return "Дай один практический совет по воспитанию или обучению на основе контекста: " + childContext, nil
	case KindMissions:
		return "Предложи 5 конкретных идей миссий для ребенка. Формат: только список через запятую. Контекст: " + childContext, nil
	case KindPrizes:
		return "Предложи 5 идей наград (призов) для ребенка. Формат: только список через запятую. Контекст: " + childContext, nil
	default:
		return "", fmt.Errorf("unknown idea kind: %s", kind)
	}
}

// ParseIdeaList splits a comma-separated model response into trimmed,
// non-empty items.
func ParseIdeaList(text string) []string {
	items := []string{}
	for _, part := range strings.Split(text, ",") {
		item := strings.TrimSpace(part)
		item = strings.Trim(item, ".")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
