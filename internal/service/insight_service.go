package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"familywallet/internal/insights"
	"familywallet/internal/models"
)

// ErrUnknownIdeaKind is returned for idea kinds outside advice/missions/prizes
var ErrUnknownIdeaKind = errors.New("unknown idea kind")

// Fallback strings shown when the AI adapter fails or returns nothing. A
// failed call is never an error for the caller.
const (
	fallbackInsightUnavailable = "Не удалось получить аналитику. Попробуйте позже."
	fallbackInsightEmpty       = "Данные успешно проанализированы. Ребенок показывает стабильный рост."
	fallbackIdeasEmpty         = "Идеи находятся в разработке..."
	fallbackIdeasError         = "Ошибка генерации идей."
	noRecentActivity           = "Нет недавней активности"
)

// Generator is the AI adapter contract used by InsightService. Implemented by
// insights.Client; faked in tests.
type Generator interface {
	ChildInsight(ctx context.Context, name string, missionCount int, lastActivity string) (string, error)
	Ideas(ctx context.Context, kind, childContext string) (string, error)
	EditImage(ctx context.Context, image []byte, mimeType, prompt string) ([]byte, string, error)
}

// InsightService turns child snapshots into display-only AI content. Each
// child carries a request generation counter: when a newer request starts
// before an older one finishes, the older response is discarded instead of
// overwriting fresher display state.
type InsightService struct {
	generator   Generator
	generations generationCounter
}

// NewInsightService creates an insight service. A nil generator disables AI
// calls entirely; every request then yields the fallback text.
func NewInsightService(generator Generator) *InsightService {
	return &InsightService{generator: generator}
}

// ChildInsight returns a short AI progress summary for the child. Failures
// and superseded responses both yield the fallback string.
func (s *InsightService) ChildInsight(ctx context.Context, child models.Child) string {
	if s.generator == nil {
		return fallbackInsightUnavailable
	}

	activeMissions := 0
	for _, m := range child.Missions {
		if m.Status == models.MissionStatusActive {
			activeMissions++
		}
	}
	lastActivity := noRecentActivity
	if len(child.Activities) > 0 {
		lastActivity = child.Activities[0].Description
	}

	generation := s.generations.begin(child.ID)
	text, err := s.generator.ChildInsight(ctx, child.Name, activeMissions, lastActivity)
	if err != nil {
		log.Printf("insight generation failed for child %s: %v", child.ID, err)
		return fallbackInsightUnavailable
	}
	if !s.generations.isCurrent(child.ID, generation) {
		// a newer request took over while this one was in flight
		return fallbackInsightUnavailable
	}
	if text == "" {
		return fallbackInsightEmpty
	}
	return text
}

// Ideas generates card content. For the missions and prizes kinds the text is
// also parsed into a list of items. An unknown kind is a caller error.
func (s *InsightService) Ideas(ctx context.Context, kind, childContext string) (string, []string, error) {
	if kind != insights.KindAdvice && kind != insights.KindMissions && kind != insights.KindPrizes {
		return "", nil, ErrUnknownIdeaKind
	}
	if s.generator == nil {
		return fallbackIdeasError, nil, nil
	}

	text, err := s.generator.Ideas(ctx, kind, childContext)
	if err != nil {
		log.Printf("idea generation failed for kind %s: %v", kind, err)
		return fallbackIdeasError, nil, nil
	}
	if text == "" {
		return fallbackIdeasEmpty, nil, nil
	}

	var items []string
	if kind == insights.KindMissions || kind == insights.KindPrizes {
		items = insights.ParseIdeaList(text)
	}
	return text, items, nil
}

// EditDreamImage asks the AI to edit a dream image. Any failure yields no
// image rather than an error; stale responses are discarded.
func (s *InsightService) EditDreamImage(ctx context.Context, childID string, image []byte, mimeType, prompt string) ([]byte, string) {
	if s.generator == nil {
		return nil, ""
	}

	generation := s.generations.begin("image:" + childID)
	edited, editedMime, err := s.generator.EditImage(ctx, image, mimeType, prompt)
	if err != nil {
		log.Printf("image edit failed for child %s: %v", childID, err)
		return nil, ""
	}
	if !s.generations.isCurrent("image:"+childID, generation) {
		return nil, ""
	}
	return edited, editedMime
}

// generationCounter tracks the newest request generation per key
type generationCounter struct {
	mu      sync.Mutex
	current map[string]uint64
}

func (g *generationCounter) begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		g.current = make(map[string]uint64)
	}
	g.current[key]++
	return g.current[key]
}

func (g *generationCounter) isCurrent(key string, generation uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current[key] == generation
}
